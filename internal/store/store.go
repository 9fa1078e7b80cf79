// Package store holds the snapshot the page shows and tells subscribers
// whenever it is replaced.
package store

import (
	"sync"
	"time"

	"github.com/statismics/backend/internal/model"
)

// Listener is called with every published snapshot. Listeners must not
// modify the snapshot and should return quickly.
type Listener func(s *model.Snapshot)

type Store struct {
	mu        sync.RWMutex
	current   *model.Snapshot
	version   uint64
	listeners map[uint64]Listener
	nextID    uint64
}

func New() *Store {
	return &Store{
		current:   model.NewIdleSnapshot(),
		listeners: map[uint64]Listener{},
	}
}

// Current returns the latest snapshot. The result is shared and must be
// treated as read only.
func (s *Store) Current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers l until the returned function is called. Calling the
// function more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// Replace publishes snapshot as the new current snapshot, stamping it with
// the next version, and notifies every listener. Listeners run on the
// calling goroutine after the store lock is released.
func (s *Store) Replace(snapshot *model.Snapshot) *model.Snapshot {
	s.mu.Lock()
	s.version++
	snapshot.Version = s.version
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now()
	}
	s.current = snapshot
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return snapshot
}

// Subscribers returns how many listeners are registered.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}
