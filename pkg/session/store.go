package session

import (
	"context"

	"github.com/google/uuid"
)

// Store persists sessions keyed by their opaque token.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by token. Expired sessions may still be
	// returned; the manager owns the expiry decision.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Deleting a missing token is not an
	// error.
	Delete(ctx context.Context, token string) error

	// DeleteByIdentityID removes every session for the identity, used when
	// credentials change and existing sessions must be invalidated.
	DeleteByIdentityID(ctx context.Context, identityID uuid.UUID) error
}
