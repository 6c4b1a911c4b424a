package threadpool

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/thpool/internal/testutil"
	gferrors "github.com/vnykmshr/thpool/pkg/common/errors"
	"github.com/vnykmshr/thpool/pkg/metrics"
)

func TestNewWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool, err := NewWithMetrics(2, "resize", reg)
	testutil.AssertNoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		testutil.AssertNoError(t, pool.Submit(func() { wg.Done() }))
	}
	wg.Add(1)
	testutil.AssertNoError(t, pool.Submit(func() {
		defer wg.Done()
		panic("bad image")
	}))
	wg.Wait()
	testutil.AssertEventually(t, func() bool {
		return pool.TotalCompleted()+pool.TotalPanicked() == 5
	}, "all tasks accounted for")

	expected := `
# HELP thpool_pool_size Configured number of workers
# TYPE thpool_pool_size gauge
thpool_pool_size{pool="resize"} 2
# HELP thpool_pool_tasks_executed_total Total number of tasks run to completion by pool workers
# TYPE thpool_pool_tasks_executed_total counter
thpool_pool_tasks_executed_total{pool="resize"} 4
# HELP thpool_pool_tasks_panicked_total Total number of tasks whose function panicked
# TYPE thpool_pool_tasks_panicked_total counter
thpool_pool_tasks_panicked_total{pool="resize"} 1
# HELP thpool_pool_tasks_submitted_total Tasks accepted by Submit
# TYPE thpool_pool_tasks_submitted_total counter
thpool_pool_tasks_submitted_total{pool="resize"} 5
`
	// Event metrics are recorded after the pool counters move, so poll.
	testutil.AssertEventually(t, func() bool {
		return promtestutil.GatherAndCompare(reg, strings.NewReader(expected),
			"thpool_pool_size", "thpool_pool_tasks_executed_total",
			"thpool_pool_tasks_panicked_total", "thpool_pool_tasks_submitted_total") == nil
	}, "metrics match pool activity")

	pool.Destroy()

	n, err := promtestutil.GatherAndCount(reg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 0)
}

func TestNewWithMetricsRecreateAfterDestroy(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewWithMetrics(2, "jobs", reg)
	testutil.AssertNoError(t, err)
	done := make(chan struct{})
	testutil.AssertNoError(t, first.Submit(func() { close(done) }))
	<-done
	first.Destroy()

	n, err := promtestutil.GatherAndCount(reg, "thpool_pool_live_workers", "thpool_pool_size")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 0)

	second, err := NewWithMetrics(3, "jobs", reg)
	testutil.AssertNoError(t, err)
	defer second.Destroy()

	expected := `
# HELP thpool_pool_size Configured number of workers
# TYPE thpool_pool_size gauge
thpool_pool_size{pool="jobs"} 3
`
	err = promtestutil.GatherAndCompare(reg, strings.NewReader(expected), "thpool_pool_size")
	testutil.AssertNoError(t, err)
}

func TestNewWithMetricsConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "thpool_pool_tasks_panicked_total",
		Help: "unrelated gauge",
	}))

	pool, err := NewWithMetrics(1, "clash", reg)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, pool == nil, true)

	var opErr *gferrors.OperationError
	testutil.AssertEqual(t, errors.As(err, &opErr), true)
	testutil.AssertEqual(t, opErr.Operation, "NewWithMetrics")
}

func TestNewWithMetricsChainsUserHook(t *testing.T) {
	reg := prometheus.NewRegistry()
	calls := make(chan time.Duration, 1)

	pool, err := NewWithConfigAndMetrics(Config{
		WorkerCount:    1,
		Logger:         quietLogger(),
		OnTaskComplete: func(_ int, d time.Duration, _ bool) { calls <- d },
	}, metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)
	defer pool.Destroy()

	testutil.AssertNoError(t, pool.Submit(func() {}))

	select {
	case <-calls:
	case <-time.After(testutil.TestTimeout):
		t.Fatal("user OnTaskComplete hook was not called")
	}
	testutil.AssertEqual(t, strings.HasPrefix(pool.Name(), "pool-"), true)
}

func TestNewWithMetricsDuplicateName(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewWithMetrics(1, "dup", reg)
	testutil.AssertNoError(t, err)
	defer first.Destroy()

	second, err := NewWithMetrics(1, "dup", reg)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, second == nil, true)

	var already prometheus.AlreadyRegisteredError
	testutil.AssertEqual(t, errors.As(err, &already), true)
}

func TestNewWithMetricsDisabled(t *testing.T) {
	pool, err := NewWithConfigAndMetrics(Config{WorkerCount: 1, Logger: quietLogger()}, metrics.Config{Enabled: false})
	testutil.AssertNoError(t, err)
	pool.Destroy()
}

func TestNewWithMetricsInvalidSize(t *testing.T) {
	pool, err := NewWithMetrics(0, "empty", prometheus.NewRegistry())
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, pool == nil, true)
}

func TestPoolsShareRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()

	a, err := NewWithMetrics(1, "a", reg)
	testutil.AssertNoError(t, err)
	defer a.Destroy()
	b, err := NewWithMetrics(1, "b", reg)
	testutil.AssertNoError(t, err)
	defer b.Destroy()

	n, err := promtestutil.GatherAndCount(reg, "thpool_pool_size")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 2)
}
