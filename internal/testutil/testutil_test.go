package testutil

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEventually(t *testing.T) {
	var flag int32
	go func() {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&flag, 1)
	}()

	ok := Eventually(func() bool { return atomic.LoadInt32(&flag) == 1 }, time.Second)
	AssertEqual(t, ok, true)

	ok = Eventually(func() bool { return false }, 10*time.Millisecond)
	AssertEqual(t, ok, false)
}

func TestWaitForInt64(t *testing.T) {
	var counter int64
	go func() {
		for i := 0; i < 5; i++ {
			atomic.AddInt64(&counter, 1)
		}
	}()
	WaitForInt64(t, &counter, 5)
}

func TestExecutionLog(t *testing.T) {
	log := NewExecutionLog()

	log.Start(1)
	log.Start(2)
	log.End(1)
	log.Start(3)
	log.End(2)
	log.End(3)

	AssertEqual(t, log.Count(), 3)
	AssertEqual(t, log.MaxConcurrent(), 2)

	order := log.Order()
	AssertEqual(t, order[0], 1)
	AssertEqual(t, order[2], 3)
}

func TestSyncBufferConcurrentWrites(t *testing.T) {
	var buf SyncBuffer
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = buf.Write([]byte("x"))
		}()
	}
	wg.Wait()

	AssertEqual(t, len(buf.String()), 10)
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	AssertEqual(t, ok, true)
	AssertEqual(t, time.Until(deadline) <= TestTimeout, true)
}

func TestAssertHelpers(t *testing.T) {
	AssertNoError(t, nil)
	AssertEqual(t, 1, 1)
	AssertNotEqual(t, "a", "b")
}
