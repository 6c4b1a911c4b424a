package testutil

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// pollInterval is how often Eventually re-checks its condition.
const pollInterval = 2 * time.Millisecond

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), TestTimeout)
}

// Eventually polls cond until it returns true or timeout elapses.
// It reports whether the condition was met.
func Eventually(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// AssertEventually fails the test if cond does not become true within TestTimeout.
func AssertEventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	if !Eventually(cond, TestTimeout) {
		t.Fatalf("condition not met within %v: %s", TestTimeout, msg)
	}
}

// WaitForInt64 waits until the counter reaches want or TestTimeout elapses.
func WaitForInt64(t *testing.T, counter *int64, want int64) {
	t.Helper()
	ok := Eventually(func() bool { return atomic.LoadInt64(counter) >= want }, TestTimeout)
	if !ok {
		t.Fatalf("counter = %d, want %d", atomic.LoadInt64(counter), want)
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertNotEqual fails the test if got == want
func AssertNotEqual[T comparable](t *testing.T, got, notWant T) {
	t.Helper()
	if got == notWant {
		t.Fatalf("got %v, want anything else", got)
	}
}
