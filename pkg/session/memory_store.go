package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. A background sweep
// removes expired records so abandoned sessions do not accumulate.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ticker   *time.Ticker
	done     chan struct{}
}

// NewMemoryStore creates an in-memory store. A positive sweepInterval starts
// the cleanup goroutine; zero disables it.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	if sweepInterval > 0 {
		s.ticker = time.NewTicker(sweepInterval)
		go s.sweepLoop()
	}
	return s
}

func (s *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sessions[sess.Token] = &copied
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) DeleteByIdentityID(ctx context.Context, identityID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, sess := range s.sessions {
		if sess.IdentityID == identityID {
			delete(s.sessions, token)
		}
	}
	return nil
}

// Close stops the sweep goroutine.
func (s *MemoryStore) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

func (s *MemoryStore) sweepLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.sweep(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
