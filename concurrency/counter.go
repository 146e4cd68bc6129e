package concurrency

import "sync/atomic"

// Counter is a lock-free counter safe for use from any number of goroutines
// without external synchronization. The zero value is ready to use with an
// initial value of 0.
type Counter struct {
	v atomic.Int64
}

// Increment adds one and returns the previous value.
func (c *Counter) Increment() int64 {
	return c.v.Add(1) - 1
}

// Decrement subtracts one and returns the previous value.
func (c *Counter) Decrement() int64 {
	return c.v.Add(-1) + 1
}

// Get returns the current value.
func (c *Counter) Get() int64 {
	return c.v.Load()
}

// Set replaces the current value.
func (c *Counter) Set(v int64) {
	c.v.Store(v)
}
