package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side record for one authenticated principal.
type Session struct {
	ID         uuid.UUID `json:"id"`
	Token      string    `json:"token"`
	IdentityID uuid.UUID `json:"identity_id"`
	Role       string    `json:"role,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// New creates a session for the identity with the given lifetime.
func New(token string, identityID uuid.UUID, role string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		Token:      token,
		IdentityID: identityID,
		Role:       role,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// ExpiredAt reports whether the session is past its lifetime at the given time.
func (s *Session) ExpiredAt(t time.Time) bool {
	return s != nil && t.After(s.ExpiresAt)
}
