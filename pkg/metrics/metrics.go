// Package metrics provides Prometheus instrumentation for thpool worker pools.
package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/thpool/pkg/common/validation"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "thpool"

const subsystem = "pool"

// PoolState is the read-only view of a pool sampled at scrape time.
type PoolState interface {
	Size() int
	Live() int
	ActiveWorkers() int
	QueueLen() int
	TotalSubmitted() int64
	TotalDiscarded() int64
}

// Registry holds the event metrics shared by all pools registered on one
// Prometheus registerer.
type Registry struct {
	TasksExecuted         *prometheus.CounterVec
	TasksPanicked         *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec

	namespace string
	reg       prometheus.Registerer
}

// DefaultRegistry is the default metrics registry used by thpool components.
var DefaultRegistry *Registry

func init() {
	r, err := NewRegistry(prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	DefaultRegistry = r
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) (*Registry, error) {
	return NewRegistryWithNamespace(reg, DefaultNamespace)
}

// NewRegistryWithNamespace is NewRegistry with a custom metric namespace.
// Several pools may share one registerer: metric vectors already registered
// on reg are reused. A conflicting collector under the same name is an error.
func NewRegistryWithNamespace(reg prometheus.Registerer, namespace string) (*Registry, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	executed, err := registerOrReuse(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_executed_total",
			Help:      "Total number of tasks run to completion by pool workers",
		},
		[]string{"pool"},
	))
	if err != nil {
		return nil, err
	}

	panicked, err := registerOrReuse(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_panicked_total",
			Help:      "Total number of tasks whose function panicked",
		},
		[]string{"pool"},
	))
	if err != nil {
		return nil, err
	}

	duration, err := registerOrReuse(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_duration_seconds",
			Help:      "Time spent executing a task",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"pool"},
	))
	if err != nil {
		return nil, err
	}

	return &Registry{
		TasksExecuted:         executed,
		TasksPanicked:         panicked,
		TaskExecutionDuration: duration,
		namespace:             namespace,
		reg:                   reg,
	}, nil
}

// registerOrReuse registers c on reg, returning the collector already
// registered under the same descriptor if there is one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// RegisterPool registers scrape-time gauges and counters for one pool.
// It fails if a pool with the same name is already registered. The returned
// function unregisters them and drops the pool's event series; it is safe to
// call more than once.
func (r *Registry) RegisterPool(name string, src PoolState) (unregister func(), err error) {
	if err := validation.ValidateNotEmpty("metrics", "pool name", name); err != nil {
		return nil, err
	}

	labels := prometheus.Labels{"pool": name}
	opts := func(metric, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace:   r.namespace,
			Subsystem:   subsystem,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		}
	}
	counterOpts := func(metric, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts(opts(metric, help))
	}

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(opts("size", "Configured number of workers"),
			func() float64 { return float64(src.Size()) }),
		prometheus.NewGaugeFunc(opts("live_workers", "Workers that have not exited"),
			func() float64 { return float64(src.Live()) }),
		prometheus.NewGaugeFunc(opts("active_workers", "Workers currently executing a task"),
			func() float64 { return float64(src.ActiveWorkers()) }),
		prometheus.NewGaugeFunc(opts("queued_tasks", "Tasks waiting in the queue"),
			func() float64 { return float64(src.QueueLen()) }),
		prometheus.NewCounterFunc(counterOpts("tasks_submitted_total", "Tasks accepted by Submit"),
			func() float64 { return float64(src.TotalSubmitted()) }),
		prometheus.NewCounterFunc(counterOpts("tasks_discarded_total", "Queued tasks dropped at shutdown"),
			func() float64 { return float64(src.TotalDiscarded()) }),
	}

	for i, c := range collectors {
		if err := r.reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				r.reg.Unregister(done)
			}
			return nil, err
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, c := range collectors {
				r.reg.Unregister(c)
			}
			r.TasksExecuted.DeleteLabelValues(name)
			r.TasksPanicked.DeleteLabelValues(name)
			r.TaskExecutionDuration.DeleteLabelValues(name)
		})
	}, nil
}

// ObserveTask records one finished task execution.
func (r *Registry) ObserveTask(pool string, seconds float64, panicked bool) {
	r.TaskExecutionDuration.WithLabelValues(pool).Observe(seconds)
	if panicked {
		r.TasksPanicked.WithLabelValues(pool).Inc()
		return
	}
	r.TasksExecuted.WithLabelValues(pool).Inc()
}
