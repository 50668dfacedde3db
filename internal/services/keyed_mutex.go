package services

import "sync"

// keyedMutex serializes work per key; entries are dropped once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	holders int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (km *keyedMutex) Lock(key string) func() {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &keyedLock{}
		km.locks[key] = lock
	}
	lock.holders++
	km.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		km.mu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}
