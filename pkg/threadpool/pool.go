package threadpool

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vnykmshr/thpool/internal/taskqueue"
	gferrors "github.com/vnykmshr/thpool/pkg/common/errors"
	"github.com/vnykmshr/thpool/pkg/common/validation"
)

const module = "threadpool"

// Config holds configuration options for creating a pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// Name identifies the pool in logs and metrics.
	// If empty, a unique name is generated.
	Name string

	// Logger receives pool diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// PanicHandler is called when a task panics. The worker survives the
	// panic and keeps serving the queue.
	//
	// PanicHandler and the On* hooks called from workers are themselves
	// recovered: a panicking hook is logged and otherwise ignored.
	PanicHandler func(workerID int, recovered interface{})

	// OnWorkerStart runs in the creating goroutine before each worker is
	// started. A non-nil error aborts creation and stops every worker
	// started so far.
	OnWorkerStart func(workerID int) error

	// OnWorkerStop is called by a worker after it has left its loop.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int)

	// OnTaskComplete is called after a task returns or panics.
	OnTaskComplete func(workerID int, duration time.Duration, panicked bool)
}

// DefaultConfig returns a single-worker configuration.
func DefaultConfig() Config {
	return Config{
		WorkerCount: 1,
	}
}

// Pool is a fixed set of workers executing tasks from a shared FIFO queue.
//
// The queue, the shutdown flag and every counter are guarded by mu. Workers
// sleep on cond while the queue is empty.
type Pool struct {
	config Config
	name   string
	logger *slog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	queue    taskqueue.Queue
	shutdown bool
	live     int
	active   int

	submitted int64
	completed int64
	panicked  int64
	discarded int64

	workers []*worker
	wg      sync.WaitGroup

	cleanups []func()
}

// New creates a pool with workerCount workers.
func New(workerCount int) (*Pool, error) {
	cfg := DefaultConfig()
	cfg.WorkerCount = workerCount
	return NewWithConfig(cfg)
}

// NewWithConfig creates a pool from config. Workers are started one at a
// time; when any of them fails to start, the workers already running are
// stopped and joined before the error is returned.
func NewWithConfig(config Config) (*Pool, error) {
	if err := validation.ValidatePositive(module, "WorkerCount", config.WorkerCount); err != nil {
		return nil, err
	}

	name := config.Name
	if name == "" {
		name = generateName()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		config:  config,
		name:    name,
		logger:  logger.With("pool", name),
		workers: make([]*worker, 0, config.WorkerCount),
	}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < config.WorkerCount; i++ {
		if err := p.spawn(i); err != nil {
			started := len(p.workers)
			p.Destroy()
			p.logger.Error("pool creation aborted", "worker", i, "started", started, "error", err)
			return nil, gferrors.NewOperationError(module, "New",
				fmt.Errorf("%w: %w", gferrors.ErrSpawnFailed, err)).
				WithContext(fmt.Sprintf("worker %d of %d", i, config.WorkerCount))
		}
	}

	p.logger.Debug("pool created", "workers", config.WorkerCount)
	return p, nil
}

// generateName returns a short unique pool name.
func generateName() string {
	return "pool-" + uuid.NewString()[:8]
}

// spawn initialises and starts worker id, counting it as live.
func (p *Pool) spawn(id int) error {
	if p.config.OnWorkerStart != nil {
		if err := p.config.OnWorkerStart(id); err != nil {
			return err
		}
	}

	w := &worker{id: id, pool: p}
	p.workers = append(p.workers, w)
	p.wg.Add(1)

	p.mu.Lock()
	p.live++
	p.mu.Unlock()

	go w.run()
	return nil
}

// onDestroy registers fn to run after Destroy has joined every worker.
func (p *Pool) onDestroy(fn func()) {
	p.cleanups = append(p.cleanups, fn)
}

// Name returns the pool's name as used in logs and metrics.
func (p *Pool) Name() string {
	return p.name
}

// Size returns the configured number of workers.
func (p *Pool) Size() int {
	return p.config.WorkerCount
}

// Live returns the number of workers that have not exited their loop.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// ActiveWorkers returns the number of workers currently executing a task.
func (p *Pool) ActiveWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// QueueLen returns the number of tasks waiting to be dequeued.
func (p *Pool) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// Closed reports whether Destroy has been called.
func (p *Pool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shutdown
}

// TotalSubmitted returns the number of tasks accepted by Submit.
func (p *Pool) TotalSubmitted() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitted
}

// TotalCompleted returns the number of tasks that returned normally.
func (p *Pool) TotalCompleted() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// TotalPanicked returns the number of tasks that panicked.
func (p *Pool) TotalPanicked() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.panicked
}

// TotalDiscarded returns the number of queued tasks dropped by Destroy.
func (p *Pool) TotalDiscarded() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.discarded
}
