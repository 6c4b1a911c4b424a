package threadpool

import (
	gferrors "github.com/vnykmshr/thpool/pkg/common/errors"
	"github.com/vnykmshr/thpool/pkg/common/validation"
)

// Submit queues fn for execution by one of the workers and wakes a single
// idle worker. It never blocks on queue capacity. After Destroy has started
// it fails with an error wrapping errors.ErrClosed and queues nothing.
func (p *Pool) Submit(fn func()) error {
	if err := validation.ValidateNotNil(module, "task", fn); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shutdown {
		return gferrors.NewOperationError(module, "Submit", gferrors.ErrClosed).
			WithContext("pool " + p.name + " has been shut down")
	}

	p.queue.Enqueue(fn)
	p.submitted++
	p.cond.Signal()
	return nil
}

// SubmitArg queues fn to be called with arg. The pool never inspects arg;
// releasing whatever it refers to is up to fn.
func (p *Pool) SubmitArg(fn func(arg interface{}), arg interface{}) error {
	if err := validation.ValidateNotNil(module, "task", fn); err != nil {
		return err
	}
	return p.Submit(func() { fn(arg) })
}
