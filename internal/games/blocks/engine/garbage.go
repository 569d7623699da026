package engine

import "sync"

// GarbageQueue collects attack rows from other goroutines. The owning Clock
// drains it at the start of each Update, never mid-tick.
type GarbageQueue struct {
	mu      sync.Mutex
	pending []int
}

// NewGarbageQueue creates an empty queue.
func NewGarbageQueue() *GarbageQueue {
	return &GarbageQueue{}
}

// Push enqueues an attack of n rows. Non-positive counts are ignored.
func (q *GarbageQueue) Push(n int) {
	if n <= 0 {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, n)
	q.mu.Unlock()
}

// Pending returns the total number of queued rows.
func (q *GarbageQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	total := 0
	for _, n := range q.pending {
		total += n
	}
	return total
}

// Drain empties the queue and returns the total number of rows.
func (q *GarbageQueue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	total := 0
	for _, n := range batch {
		total += n
	}
	return total
}
