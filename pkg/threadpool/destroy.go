package threadpool

// Destroy shuts the pool down. Tasks still waiting in the queue are dropped
// without running; tasks already picked up by a worker run to completion.
// Destroy blocks until every worker has exited, then releases the pool's
// metrics registrations. The pool must not be used afterwards, and Destroy
// must not be called concurrently with itself.
func (p *Pool) Destroy() {
	p.mu.Lock()
	dropped := p.queue.Drain()
	p.discarded += int64(dropped)
	p.shutdown = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()

	for _, fn := range p.cleanups {
		fn()
	}
	p.cleanups = nil

	p.logger.Debug("pool destroyed", "discarded", dropped)
}
