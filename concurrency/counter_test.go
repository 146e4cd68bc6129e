package concurrency

import (
	"sync"
	"testing"
)

func TestCounter_ReturnsPreviousValue(t *testing.T) {
	var c Counter

	if prev := c.Increment(); prev != 0 {
		t.Errorf("first Increment returned %d, want 0", prev)
	}
	if prev := c.Increment(); prev != 1 {
		t.Errorf("second Increment returned %d, want 1", prev)
	}
	if prev := c.Decrement(); prev != 2 {
		t.Errorf("Decrement returned %d, want 2", prev)
	}
	if got := c.Get(); got != 1 {
		t.Errorf("Get returned %d, want 1", got)
	}

	c.Set(42)
	if got := c.Get(); got != 42 {
		t.Errorf("Get after Set returned %d, want 42", got)
	}
}

func TestCounter_NoLostUpdates(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 10000

	var c Counter
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	if got := c.Get(); got != goroutines*perGoroutine {
		t.Errorf("final value = %d, want %d", got, goroutines*perGoroutine)
	}
}

func TestCounter_PoolSharedCounter(t *testing.T) {
	const tasks = 500

	pool := NewPool(4)
	defer pool.Shutdown()

	var c Counter
	for i := 0; i < tasks; i++ {
		if err := pool.SubmitFunc(func() { c.Increment() }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.WaitIdle()

	if got := c.Get(); got != tasks {
		t.Errorf("final value = %d, want %d", got, tasks)
	}
}
