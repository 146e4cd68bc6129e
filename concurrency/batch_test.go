package concurrency

import (
	"errors"
	"testing"
)

func TestBatchProcessor_TenIncrements(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	b := NewBatchProcessor(pool)
	var c Counter
	for i := 0; i < 10; i++ {
		b.AddFunc(func() { c.Increment() })
	}
	if b.Pending() != 10 {
		t.Errorf("Pending = %d, want 10", b.Pending())
	}

	if err := b.ProcessBatch(); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
	if got := c.Get(); got != 10 {
		t.Errorf("counter = %d, want 10", got)
	}
	if b.Pending() != 0 {
		t.Errorf("Pending after batch = %d, want 0", b.Pending())
	}
}

func TestBatchProcessor_PanicSkipsItemOnly(t *testing.T) {
	pool := NewPool(2)
	defer pool.Shutdown()

	b := NewBatchProcessor(pool)
	var c Counter
	b.AddFunc(func() { c.Increment() })
	b.AddFunc(func() { panic("bad item") })
	b.AddFunc(func() { c.Increment() })

	if err := b.ProcessBatch(); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
	if got := c.Get(); got != 2 {
		t.Errorf("counter = %d, want 2 (surviving items must run)", got)
	}
	if got := b.Failed(); got != 1 {
		t.Errorf("Failed = %d, want 1", got)
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	pool := NewPool(1)
	defer pool.Shutdown()

	b := NewBatchProcessor(pool)
	if err := b.ProcessBatch(); err != nil {
		t.Errorf("empty ProcessBatch failed: %v", err)
	}
}

func TestBatchProcessor_DrainingPool(t *testing.T) {
	pool := NewPool(1)
	pool.Shutdown()

	b := NewBatchProcessor(pool)
	b.AddFunc(func() {})
	err := b.ProcessBatch()
	if !errors.Is(err, ErrPoolDraining) {
		t.Errorf("ProcessBatch on stopped pool = %v, want ErrPoolDraining", err)
	}
	if b.Failed() != 1 {
		t.Errorf("Failed = %d, want 1", b.Failed())
	}
}

func TestParallelForEach_ProcessesEveryElement(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	items := make([]int, 100)
	for i := range items {
		items[i] = i + 1
	}

	var sum Counter
	if err := ParallelForEach(pool, items, func(v int) {
		for i := 0; i < v; i++ {
			sum.Increment()
		}
	}); err != nil {
		t.Fatalf("ParallelForEach failed: %v", err)
	}

	want := int64(100 * 101 / 2)
	if got := sum.Get(); got != want {
		t.Errorf("sum = %d, want %d", got, want)
	}
}

func TestParallelForEach_ConcurrentMapWrites(t *testing.T) {
	pool := NewPool(8)
	defer pool.Shutdown()

	words := []string{"ls", "cat", "grep", "sed", "awk", "find", "sort", "tee"}
	m := NewMap[int](4)
	if err := ParallelForEach(pool, words, func(w string) {
		m.Put(w, len(w))
	}); err != nil {
		t.Fatalf("ParallelForEach failed: %v", err)
	}

	if m.Count() != len(words) {
		t.Errorf("Count = %d, want %d", m.Count(), len(words))
	}
	for _, w := range words {
		if v, ok := m.Get(w); !ok || v != len(w) {
			t.Errorf("Get(%s) = (%d, %v), want (%d, true)", w, v, ok, len(w))
		}
	}
}
