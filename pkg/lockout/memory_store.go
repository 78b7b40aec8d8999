package lockout

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count        int
	windowExpiry time.Time
	lockedUntil  time.Time
}

// MemoryStore implements Store with an in-process map guarded by a mutex, so
// every operation is an atomic read-modify-write.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Fail(ctx context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.windowExpiry) {
		e = &entry{windowExpiry: now.Add(window)}
		s.entries[key] = e
	}

	e.count++
	return e.count, nil
}

func (s *MemoryStore) Lock(ctx context.Context, key string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.lockedUntil = until
	return nil
}

func (s *MemoryStore) LockedUntil(ctx context.Context, key string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return time.Time{}, nil
	}
	return e.lockedUntil, nil
}

func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
