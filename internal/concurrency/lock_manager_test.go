package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("player-1")
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Zero(t, lm.Len(), "index should be empty once every holder released")
}

func TestLockManager_IndependentKeys(t *testing.T) {
	lm := NewLockManager()

	unlockA := lm.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := lm.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	assert.Equal(t, 1, lm.Len())
}

func TestLockManager_UnlockIdempotent(t *testing.T) {
	lm := NewLockManager()

	unlock := lm.Lock("a")
	unlock()
	unlock()

	assert.Zero(t, lm.Len())

	// The key is usable again.
	unlock = lm.Lock("a")
	unlock()
}
