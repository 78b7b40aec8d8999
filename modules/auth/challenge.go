package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// challengeTokenBytes is the entropy of a challenge token before encoding.
const challengeTokenBytes = 32

// PendingChallenge records a password-verified identity that still owes a
// second factor. The token is the only handle the client holds; no session
// exists until the challenge is resolved.
type PendingChallenge struct {
	Token      string
	IdentityID uuid.UUID
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the challenge is past its deadline at t.
func (c PendingChallenge) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// ChallengeStore persists pending two-factor challenges between the
// password step and the second-factor step.
//
// Get and Claim return ErrChallengeNotFound (possibly wrapped) for unknown
// or expired tokens. Claim atomically removes the challenge so that at most
// one submission can complete it.
type ChallengeStore interface {
	Create(ctx context.Context, identityID uuid.UUID, ttl time.Duration) (string, error)
	Get(ctx context.Context, token string) (*PendingChallenge, error)
	Claim(ctx context.Context, token string) (*PendingChallenge, error)
	Delete(ctx context.Context, token string) error
}

// MemoryChallengeStore is an in-memory ChallengeStore. Expired entries are
// dropped lazily on access.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]PendingChallenge
	now        func() time.Time
}

// NewMemoryChallengeStore creates an empty in-memory challenge store.
func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{
		challenges: make(map[string]PendingChallenge),
		now:        time.Now,
	}
}

// Create implements ChallengeStore.
func (s *MemoryChallengeStore) Create(ctx context.Context, identityID uuid.UUID, ttl time.Duration) (string, error) {
	token, err := newChallengeToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.challenges[token] = PendingChallenge{
		Token:      token,
		IdentityID: identityID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	return token, nil
}

// Get implements ChallengeStore.
func (s *MemoryChallengeStore) Get(ctx context.Context, token string) (*PendingChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[token]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	if challenge.Expired(s.now()) {
		delete(s.challenges, token)
		return nil, ErrChallengeNotFound
	}
	return &challenge, nil
}

// Claim implements ChallengeStore.
func (s *MemoryChallengeStore) Claim(ctx context.Context, token string) (*PendingChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[token]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	delete(s.challenges, token)
	if challenge.Expired(s.now()) {
		return nil, ErrChallengeNotFound
	}
	return &challenge, nil
}

// Delete implements ChallengeStore.
func (s *MemoryChallengeStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, token)
	return nil
}

func newChallengeToken() (string, error) {
	buf := make([]byte, challengeTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate challenge token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
