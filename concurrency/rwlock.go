package concurrency

import "sync"

// RWLock is a reader-preference read/write lock: any number of readers may
// hold it at once, writers get exclusive access. Readers block only while a
// writer holds the lock, never behind a merely waiting writer, so a steady
// stream of readers can delay a writer indefinitely. That is a deliberate
// trade-off: the maps built on this lock are read far more often than
// written. Do not swap in a fairness policy without a workload that needs it.
//
// Calling UnlockRead or UnlockWrite without a matching successful lock call
// is a caller error with undefined behavior.
type RWLock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	readers int
	writer  bool
}

// NewRWLock creates an unlocked RWLock.
func NewRWLock() *RWLock {
	l := &RWLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// LockRead acquires the lock for reading, blocking while a writer is active.
func (l *RWLock) LockRead() {
	l.mu.Lock()
	for l.writer {
		l.cond.Wait()
	}
	l.readers++
	l.mu.Unlock()
}

// UnlockRead releases a read hold. The last reader out wakes any waiting
// writer.
func (l *RWLock) UnlockRead() {
	l.mu.Lock()
	l.readers--
	if l.readers == 0 {
		l.cond.Broadcast()
	}
	l.mu.Unlock()
}

// LockWrite acquires the lock exclusively, blocking while any reader or
// another writer holds it.
func (l *RWLock) LockWrite() {
	l.mu.Lock()
	for l.writer || l.readers > 0 {
		l.cond.Wait()
	}
	l.writer = true
	l.mu.Unlock()
}

// UnlockWrite releases the exclusive hold and wakes all waiters.
func (l *RWLock) UnlockWrite() {
	l.mu.Lock()
	l.writer = false
	l.cond.Broadcast()
	l.mu.Unlock()
}
