package recovery

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"
)

type storedCode struct {
	hash     string
	consumed bool
}

// MemoryStore implements Store with an in-process map. Suitable for tests
// and single-instance deployments.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[uuid.UUID][]storedCode
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[uuid.UUID][]storedCode)}
}

func (s *MemoryStore) ReplaceAll(ctx context.Context, identityID uuid.UUID, hashes []string) error {
	set := make([]storedCode, len(hashes))
	for i, h := range hashes {
		set[i] = storedCode{hash: h}
	}

	s.mu.Lock()
	s.codes[identityID] = set
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ConsumeHash(ctx context.Context, identityID uuid.UUID, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.codes[identityID]
	for i := range set {
		if set[i].consumed {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(set[i].hash), []byte(hash)) == 1 {
			set[i].consumed = true
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CountUnconsumed(ctx context.Context, identityID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.codes[identityID] {
		if !c.consumed {
			count++
		}
	}
	return count, nil
}
