// Package metrics provides Prometheus instrumentation for thpool worker pools.
//
// Two kinds of metrics are exported per pool, distinguished by the "pool" label:
//   - event metrics updated as tasks finish (executed, panicked, duration)
//   - state metrics sampled at scrape time (size, live and active workers,
//     queued, submitted and discarded tasks)
//
// # Quick Start
//
//	pool, err := threadpool.NewWithMetrics(5, "uploads", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Destroy()
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	pool, err := threadpool.NewWithMetrics(5, "uploads", registry)
//
// A pool's collectors are unregistered when the pool is destroyed, so the
// name can be reused afterwards.
//
// # Metric names
//
//	thpool_pool_tasks_executed_total{pool}
//	thpool_pool_tasks_panicked_total{pool}
//	thpool_pool_task_duration_seconds{pool}
//	thpool_pool_size{pool}
//	thpool_pool_live_workers{pool}
//	thpool_pool_active_workers{pool}
//	thpool_pool_queued_tasks{pool}
//	thpool_pool_tasks_submitted_total{pool}
//	thpool_pool_tasks_discarded_total{pool}
package metrics
