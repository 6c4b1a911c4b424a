// Package taskqueue implements the unbounded FIFO of pending pool work.
//
// A Queue has no locking of its own. The owning pool guards every call with
// its mutex.
package taskqueue

// Task is a unit of work. Any argument it needs is captured by the closure.
type Task func()

type node struct {
	task Task
	next *node
}

// Queue is a singly linked FIFO with head and tail pointers.
// The zero value is an empty queue ready for use.
type Queue struct {
	head *node
	tail *node
	len  int
}

// Enqueue appends t at the tail.
func (q *Queue) Enqueue(t Task) {
	n := &node{task: t}
	if q.tail == nil {
		q.head = n
		q.tail = n
	} else {
		q.tail.next = n
		q.tail = n
	}
	q.len++
}

// Dequeue removes and returns the head task. It returns false if the queue is empty.
func (q *Queue) Dequeue() (Task, bool) {
	n := q.head
	if n == nil {
		return nil, false
	}
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.len--
	n.next = nil
	return n.task, true
}

// IsEmpty reports whether no task is pending.
func (q *Queue) IsEmpty() bool {
	return q.head == nil
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return q.len
}

// Drain discards every pending task without running it and returns how many
// were dropped.
func (q *Queue) Drain() int {
	dropped := 0
	for n := q.head; n != nil; {
		next := n.next
		n.next = nil
		n = next
		dropped++
	}
	q.head = nil
	q.tail = nil
	q.len = 0
	return dropped
}
