package concurrency

import (
	"sync"
)

// keyedLock is one slot in the lock arena. refs counts holders plus waiters so
// the slot can be released once nobody needs it.
type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out one mutex per key (player id). Unrelated keys never
// contend; the index only holds entries for keys that are locked or waited on.
type LockManager struct {
	mu    sync.Mutex
	index map[string]*keyedLock
	pool  sync.Pool
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{
		index: make(map[string]*keyedLock),
		pool: sync.Pool{
			New: func() any { return &keyedLock{} },
		},
	}
}

// Lock blocks until the lock for key is held and returns the release func.
// The release func must be called exactly once.
func (lm *LockManager) Lock(key string) (unlock func()) {
	lm.mu.Lock()
	l, ok := lm.index[key]
	if !ok {
		l = lm.pool.Get().(*keyedLock)
		lm.index[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			lm.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(lm.index, key)
				lm.pool.Put(l)
			}
			lm.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently locked or awaited.
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.index)
}
