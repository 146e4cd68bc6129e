package concurrency

import "sync"

// BatchProcessor collects units of work and fans them out over a Pool with a
// single join point: nothing runs until ProcessBatch, which blocks until
// every queued item has finished. Unlike Pool.Submit, which is
// fire-and-forget per call, a batch is an all-submitted-then-wait operation.
//
// No ordering is guaranteed between items; side effects across items must be
// independent or bring their own synchronization (a Counter, a Map).
type BatchProcessor struct {
	pool *Pool

	mu   sync.Mutex
	work []Task

	failed Counter
}

// NewBatchProcessor creates a processor that runs its batches on pool.
func NewBatchProcessor(pool *Pool) *BatchProcessor {
	return &BatchProcessor{pool: pool}
}

// AddWork queues a task without executing it.
func (b *BatchProcessor) AddWork(t Task) {
	b.mu.Lock()
	b.work = append(b.work, t)
	b.mu.Unlock()
}

// AddFunc queues a plain function without executing it.
func (b *BatchProcessor) AddFunc(fn func()) {
	b.AddWork(TaskFunc(fn))
}

// Pending returns the number of queued, not-yet-processed items.
func (b *BatchProcessor) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.work)
}

// Failed returns the number of items across all processed batches that
// panicked. Failures skip the item, they never abort the batch.
func (b *BatchProcessor) Failed() int64 {
	return b.failed.Get()
}

// ProcessBatch submits every queued item to the pool and blocks until all of
// them have completed. The queue is cleared up front, so items added
// concurrently with a running batch land in the next one. Returns the first
// submission error, if any; items that could not be submitted are counted as
// failed and skipped.
func (b *BatchProcessor) ProcessBatch() error {
	b.mu.Lock()
	work := b.work
	b.work = nil
	b.mu.Unlock()

	var wg sync.WaitGroup
	var submitErr error
	for _, t := range work {
		t := t
		wg.Add(1)
		err := b.pool.Submit(TaskFunc(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.failed.Increment()
				}
			}()
			t.Run()
		}))
		if err != nil {
			wg.Done()
			b.failed.Increment()
			if submitErr == nil {
				submitErr = err
			}
		}
	}
	wg.Wait()
	return submitErr
}

// ParallelForEach submits one task per element of items and blocks until all
// elements have been processed. It exists so call sites don't re-derive the
// submit/wait pattern. A panicking element is skipped, not fatal. Returns
// the first submission error, if any.
func ParallelForEach[T any](pool *Pool, items []T, fn func(T)) error {
	var wg sync.WaitGroup
	var submitErr error
	for i := range items {
		item := items[i]
		wg.Add(1)
		err := pool.Submit(TaskFunc(func() {
			defer wg.Done()
			defer func() {
				_ = recover()
			}()
			fn(item)
		}))
		if err != nil {
			wg.Done()
			if submitErr == nil {
				submitErr = err
			}
		}
	}
	wg.Wait()
	return submitErr
}
