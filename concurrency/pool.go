package concurrency

import (
	"errors"
	"runtime"
	"sync"
)

// MaxWorkers caps automatic pool sizing so exotic core counts never spawn a
// pathological number of goroutines.
const MaxWorkers = 64

// ErrPoolDraining is returned by [Pool.Submit] once shutdown has begun.
var ErrPoolDraining = errors.New("concurrency: pool is draining")

// Task is a unit of work executed by the pool. The submitter owns any data
// the task references until the task has completed.
type Task interface {
	Run()
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func()

func (f TaskFunc) Run() { f() }

// PoolState is the lifecycle state of a Pool.
type PoolState int

const (
	// PoolRunning accepts and executes tasks.
	PoolRunning PoolState = iota
	// PoolDraining refuses new tasks while in-flight tasks finish.
	PoolDraining
	// PoolStopped means every worker has exited.
	PoolStopped
)

func (s PoolState) String() string {
	switch s {
	case PoolRunning:
		return "running"
	case PoolDraining:
		return "draining"
	case PoolStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// PoolStats is a point-in-time snapshot of pool activity.
type PoolStats struct {
	Submitted  int64 // total tasks accepted by Submit
	Completed  int64 // tasks finished, including panicked ones
	Panicked   int64 // tasks that panicked and were recovered
	InFlight   int64 // tasks currently executing
	QueueDepth int   // tasks waiting for a worker
	Workers    int   // worker count, fixed at creation
}

// Pool is a fixed-size worker pool. Workers start at creation and run until
// Shutdown. Tasks are executed in no particular order relative to each
// other; a task that panics is recovered at the worker boundary and counted,
// never allowed to take down the pool or block the rest of the queue.
type Pool struct {
	mu       sync.Mutex
	hasWork  *sync.Cond // queue non-empty or draining
	idle     *sync.Cond // pending dropped to zero
	queue    []Task
	pending  int // queued + in-flight
	state    PoolState
	wg       sync.WaitGroup
	workers  int

	submitted Counter
	completed Counter
	panicked  Counter
	inFlight  Counter
}

// NewPool creates a pool with the given number of workers and starts them.
// workers <= 0 autodetects from the host's logical core count, clamped to
// [1, MaxWorkers].
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	p := &Pool{workers: workers}
	p.hasWork = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Workers returns the fixed worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// State returns the current lifecycle state.
func (p *Pool) State() PoolState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Submit enqueues a task for execution. It fails only once the pool has
// begun draining.
func (p *Pool) Submit(t Task) error {
	p.mu.Lock()
	if p.state != PoolRunning {
		p.mu.Unlock()
		return ErrPoolDraining
	}
	p.queue = append(p.queue, t)
	p.pending++
	p.submitted.Increment()
	p.hasWork.Signal()
	p.mu.Unlock()
	return nil
}

// SubmitFunc is shorthand for Submit(TaskFunc(fn)).
func (p *Pool) SubmitFunc(fn func()) error {
	return p.Submit(TaskFunc(fn))
}

// WaitIdle blocks until the queue is empty and no task is executing. It is a
// one-shot barrier, not a subscription: tasks submitted after it returns are
// not waited for, and calling it again with nothing in flight returns
// immediately.
func (p *Pool) WaitIdle() {
	p.mu.Lock()
	for p.pending > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Shutdown transitions the pool to draining, lets in-flight and queued tasks
// finish, and joins every worker before returning. Safe to call more than
// once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.state != PoolRunning {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.state = PoolDraining
	p.hasWork.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	p.state = PoolStopped
	p.mu.Unlock()
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	depth := len(p.queue)
	p.mu.Unlock()
	return PoolStats{
		Submitted:  p.submitted.Get(),
		Completed:  p.completed.Get(),
		Panicked:   p.panicked.Get(),
		InFlight:   p.inFlight.Get(),
		QueueDepth: depth,
		Workers:    p.workers,
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && p.state == PoolRunning {
			p.hasWork.Wait()
		}
		if len(p.queue) == 0 {
			// Draining with nothing left to do.
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.inFlight.Increment()
		p.runTask(t)
		p.inFlight.Decrement()

		p.mu.Lock()
		p.pending--
		p.completed.Increment()
		if p.pending == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}

// runTask executes one task, recovering any panic so it never crosses into
// the worker loop. Fire-and-forget tasks that fail surface only through the
// Panicked counter; callers that need results must wire their own channel.
func (p *Pool) runTask(t Task) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Increment()
		}
	}()
	t.Run()
}
