package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex serializes read-modify-write sequences per aggregate id.
// Occupancy updates and request status transitions must not interleave
// for the same venue/request under concurrent HTTP handlers.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entryLock
}

type entryLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[uuid.UUID]*entryLock),
	}
}

// Lock acquires the mutex for id and returns the matching unlock func.
// Entries are reference counted and removed when the last holder leaves.
func (k *keyedMutex) Lock(id uuid.UUID) func() {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &entryLock{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
