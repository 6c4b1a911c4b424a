/*
Package threadpool provides a fixed-size worker pool.

A pool owns a fixed number of worker goroutines that execute functions taken
from a shared, unbounded FIFO queue. Producers and workers coordinate through
one mutex and one condition variable: Submit enqueues a task and wakes a
single idle worker, a woken worker dequeues one task, releases the lock and
runs the task, so several workers execute concurrently.

Basic usage:

	pool, err := threadpool.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Destroy()

	if err := pool.Submit(func() { resize(img) }); err != nil {
		log.Printf("Failed to submit: %v", err)
	}

Functions taking an opaque argument can be submitted as is:

	err := pool.SubmitArg(func(arg interface{}) {
		job := arg.(*Job)
		job.Run()
	}, job)

Ordering:

Tasks leave the queue in submission order. With more than one worker the
order in which tasks finish is not guaranteed; a single-worker pool runs tasks
strictly one after another in submission order.

Shutdown:

Destroy drops every task still in the queue without running it, marks the
pool closed, wakes all workers and blocks until each of them has exited.
Tasks a worker had already dequeued run to completion first. There is no
timeout. Submit on a closed pool returns an error wrapping errors.ErrClosed.

Failures:

New fails with a validation error for a non-positive worker count. When
Config.OnWorkerStart rejects a worker, the workers started so far are stopped
and joined, and New returns an error wrapping errors.ErrSpawnFailed.

A panicking task is recovered in its worker, logged through Config.Logger and
reported to Config.PanicHandler; the worker keeps serving the queue. Tasks
have no result or error channel.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics export Prometheus metrics for the
pool; see package metrics for the metric names.
*/
package threadpool
