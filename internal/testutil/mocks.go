package testutil

import (
	"bytes"
	"sync"
	"time"
)

// SyncBuffer is an io.Writer safe for concurrent use. Tests hand it to a
// slog handler to inspect what pool workers logged.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the current buffer contents.
func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Span is one recorded task execution window.
type Span struct {
	ID    int
	Start time.Time
	End   time.Time
}

// ExecutionLog records task start and end events from many goroutines.
type ExecutionLog struct {
	mu         sync.Mutex
	order      []int
	spans      map[int]*Span
	running    int
	maxRunning int
}

// NewExecutionLog creates an empty ExecutionLog.
func NewExecutionLog() *ExecutionLog {
	return &ExecutionLog{spans: make(map[int]*Span)}
}

// Start marks task id as running.
func (l *ExecutionLog) Start(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order = append(l.order, id)
	l.spans[id] = &Span{ID: id, Start: time.Now()}
	l.running++
	if l.running > l.maxRunning {
		l.maxRunning = l.running
	}
}

// End marks task id as finished.
func (l *ExecutionLog) End(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.spans[id]; ok {
		s.End = time.Now()
	}
	l.running--
}

// Order returns task ids in the order they started.
func (l *ExecutionLog) Order() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int, len(l.order))
	copy(out, l.order)
	return out
}

// Count returns how many tasks have started.
func (l *ExecutionLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// MaxConcurrent returns the highest number of tasks seen running at once.
func (l *ExecutionLog) MaxConcurrent() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxRunning
}
