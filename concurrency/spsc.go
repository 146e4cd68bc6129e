package concurrency

import "sync/atomic"

const cacheLinePad = 64

// SPSCQueue is a fixed-capacity ring buffer for exactly one producer
// goroutine and exactly one consumer goroutine. Under that contract no locks
// are needed: the producer writes the element before publishing the new tail
// index, and Go's atomic stores/loads give the release/acquire pairing that
// keeps the consumer from observing a half-written slot.
//
// The single-producer/single-consumer discipline is a caller contract, not
// enforced at runtime; violating it loses the memory-ordering guarantees.
//
// One slot is reserved so head == tail unambiguously means empty: a queue
// created with capacity N holds at most N-1 elements.
type SPSCQueue[T any] struct {
	head atomic.Uint64 // next slot to pop; advanced only by the consumer
	_    [cacheLinePad]byte
	tail atomic.Uint64 // next slot to fill; advanced only by the producer
	_    [cacheLinePad]byte
	buf  []T
}

// NewSPSCQueue creates a queue with the given capacity. Capacities below 2
// are raised to 2 (a capacity-1 queue could never hold an element).
func NewSPSCQueue[T any](capacity int) *SPSCQueue[T] {
	if capacity < 2 {
		capacity = 2
	}
	return &SPSCQueue[T]{buf: make([]T, capacity)}
}

// Push appends item, returning false without storing it if the queue is
// full. Producer side only.
func (q *SPSCQueue[T]) Push(item T) bool {
	tail := q.tail.Load()
	next := (tail + 1) % uint64(len(q.buf))
	if next == q.head.Load() {
		return false
	}
	q.buf[tail] = item
	q.tail.Store(next) // publishes the element write above
	return true
}

// Pop removes and returns the oldest item, or ok == false if the queue is
// empty. Consumer side only.
func (q *SPSCQueue[T]) Pop() (item T, ok bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return item, false
	}
	item = q.buf[head]
	var zero T
	q.buf[head] = zero // drop the reference so the element can be collected
	q.head.Store((head + 1) % uint64(len(q.buf)))
	return item, true
}

// Empty reports whether the queue currently holds no elements.
func (q *SPSCQueue[T]) Empty() bool {
	return q.head.Load() == q.tail.Load()
}

// Full reports whether a Push would currently fail.
func (q *SPSCQueue[T]) Full() bool {
	next := (q.tail.Load() + 1) % uint64(len(q.buf))
	return next == q.head.Load()
}

// Cap returns the number of elements the queue can hold, which is one less
// than the capacity it was created with.
func (q *SPSCQueue[T]) Cap() int {
	return len(q.buf) - 1
}
