// Package concurrency provides the shell's parallel execution primitives:
// an atomic counter, a single-producer/single-consumer ring buffer, a
// reader-preference RWLock, a sharded concurrent map, a fixed-size worker
// pool, and batch fan-out helpers built on the pool.
//
// Everything here is in-process state. The pool owns its worker goroutines
// for its whole lifetime; callers own the data referenced by submitted
// tasks and must keep it alive until the task completes.
package concurrency
