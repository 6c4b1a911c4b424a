package threadpool

import (
	"runtime/debug"
	"time"

	"github.com/vnykmshr/thpool/internal/taskqueue"
)

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *Pool
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.wg.Done()

	for {
		task, ok := w.pool.next()
		if !ok {
			break
		}
		w.execute(task)
	}

	if w.pool.config.OnWorkerStop != nil {
		w.pool.runHook("OnWorkerStop", w.id, func() { w.pool.config.OnWorkerStop(w.id) })
	}
}

// next blocks until a task is available or the pool shuts down. Shutdown
// wins over pending work: once it is observed the worker unregisters itself
// and reports false.
func (p *Pool) next() (taskqueue.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.queue.IsEmpty() && !p.shutdown {
		p.cond.Wait()
	}

	if p.shutdown {
		p.live--
		return nil, false
	}

	task, _ := p.queue.Dequeue()
	p.active++
	return task, true
}

// execute runs one task outside the lock. A panicking task is recovered so
// the worker and the pool state survive it.
func (w *worker) execute(task taskqueue.Task) {
	p := w.pool
	start := time.Now()

	defer func() {
		r := recover()
		panicked := r != nil
		if panicked {
			p.logger.Error("task panicked",
				"worker", w.id,
				"panic", r,
				"stack", string(debug.Stack()))
			if p.config.PanicHandler != nil {
				p.runHook("PanicHandler", w.id, func() { p.config.PanicHandler(w.id, r) })
			}
		}

		p.finish(panicked)

		if p.config.OnTaskComplete != nil {
			d := time.Since(start)
			p.runHook("OnTaskComplete", w.id, func() { p.config.OnTaskComplete(w.id, d, panicked) })
		}
	}()

	if p.config.OnTaskStart != nil {
		p.runHook("OnTaskStart", w.id, func() { p.config.OnTaskStart(w.id) })
	}

	task()
}

// runHook calls a user hook, logging instead of propagating any panic so
// the worker's bookkeeping always completes.
func (p *Pool) runHook(name string, workerID int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("hook panicked",
				"hook", name,
				"worker", workerID,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// finish records the end of a task run.
func (p *Pool) finish(panicked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active--
	if panicked {
		p.panicked++
	} else {
		p.completed++
	}
}
