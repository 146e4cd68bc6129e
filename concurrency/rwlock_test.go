package concurrency

import (
	"sync"
	"testing"
	"time"
)

func TestRWLock_WriteThenReadObservesMutation(t *testing.T) {
	l := NewRWLock()
	value := 0

	l.LockWrite()
	value = 7
	l.UnlockWrite()

	l.LockRead()
	if value != 7 {
		t.Errorf("read %d, want 7", value)
	}
	l.UnlockRead()

	// A second read hold observes the same value.
	l.LockRead()
	if value != 7 {
		t.Errorf("second read %d, want 7", value)
	}
	l.UnlockRead()
}

func TestRWLock_ConcurrentReaders(t *testing.T) {
	l := NewRWLock()

	// Two readers must be able to hold the lock at the same time; if the
	// second LockRead blocked behind the first, the barrier below would
	// deadlock and the test would time out.
	var barrier sync.WaitGroup
	barrier.Add(2)
	var done sync.WaitGroup
	done.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer done.Done()
			l.LockRead()
			barrier.Done()
			barrier.Wait()
			l.UnlockRead()
		}()
	}
	done.Wait()
}

func TestRWLock_WriterExcludesReaders(t *testing.T) {
	l := NewRWLock()
	value := 0

	l.LockWrite()

	readDone := make(chan int)
	go func() {
		l.LockRead()
		v := value
		l.UnlockRead()
		readDone <- v
	}()

	// The reader must not get through while the writer holds the lock.
	select {
	case <-readDone:
		t.Fatal("reader acquired lock while writer held it")
	case <-time.After(20 * time.Millisecond):
	}

	value = 99
	l.UnlockWrite()

	if v := <-readDone; v != 99 {
		t.Errorf("reader observed %d, want 99", v)
	}
}

func TestRWLock_WritersSerialize(t *testing.T) {
	const writers = 8
	const perWriter = 1000

	l := NewRWLock()
	value := 0

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				l.LockWrite()
				value++
				l.UnlockWrite()
			}
		}()
	}
	wg.Wait()

	if value != writers*perWriter {
		t.Errorf("value = %d, want %d", value, writers*perWriter)
	}
}
