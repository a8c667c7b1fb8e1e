package processing

import "sync"

// Queue is an unbounded FIFO safe for one appending goroutine and one draining goroutine.
// Growth is not limited: a slow drainer makes the queue grow.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int // index of the first live element in items
}

// NewQueue creates an empty queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, 0, 64)}
}

// Push appends v at the tail
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// Peek returns the head element without removing it
func (q *Queue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	return q.items[q.head], true
}

// Pop removes and returns the head element
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero // release references held by the backing array
	q.head++
	q.compact()
	return v, true
}

// Len returns the number of queued elements
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Walk calls fn for each element starting at offset skip from the head, in FIFO order,
// until fn returns false or the queue is exhausted. Nothing is removed.
func (q *Queue[T]) Walk(skip int, fn func(T) bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if skip < 0 {
		skip = 0
	}
	for i := q.head + skip; i < len(q.items); i++ {
		if !fn(q.items[i]) {
			return
		}
	}
}

// compact reclaims the drained prefix once it dominates the backing array.
// Must be called with mu held.
func (q *Queue[T]) compact() {
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return
	}
	if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		var zero T
		for i := n; i < len(q.items); i++ {
			q.items[i] = zero
		}
		q.items = q.items[:n]
		q.head = 0
	}
}
