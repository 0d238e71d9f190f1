package store

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// MemoryStore is a concurrency-safe in-memory KV. Nothing survives the process.
type MemoryStore struct {
	mu sync.RWMutex

	// key: cookie name, scoped to RootPath
	data map[string]entry

	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Get returns the live value for name.
func (s *MemoryStore) Get(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[name]
	if !ok || !s.now().Before(e.expires) {
		return "", ErrNotFound
	}
	return e.value, nil
}

// Set overwrites name. A non-positive maxAge expires the value immediately.
func (s *MemoryStore) Set(_ context.Context, name, value string, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = entry{value: value, expires: s.now().Add(maxAge)}
	return nil
}

// PurgeExpired drops expired entries and reports how many were removed.
func (s *MemoryStore) PurgeExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.data {
		if !now.Before(e.expires) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}
