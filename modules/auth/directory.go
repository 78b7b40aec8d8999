package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the read model of a directory record as seen by the
// authentication flow. The password hash and authenticator secret stay
// behind the Directory interface and never appear on this struct.
type Identity struct {
	ID               uuid.UUID
	Email            string
	TwoFactorEnabled bool

	// SecurityStamp changes whenever a security-sensitive attribute of the
	// identity changes, such as the authenticator secret. Consumers may use
	// it to invalidate previously issued credentials.
	SecurityStamp string
}

// Directory is the identity backend the authentication flow runs against.
// Implementations own user storage, password hashing, and role assignment.
//
// Lookup methods return ErrIdentityNotFound (possibly wrapped) when no
// record matches.
type Directory interface {
	// FindByEmail resolves an identity by its normalized email address.
	FindByEmail(ctx context.Context, email string) (*Identity, error)

	// FindByID resolves an identity by id.
	FindByID(ctx context.Context, id uuid.UUID) (*Identity, error)

	// VerifyPassword reports whether the password matches the stored hash.
	// A mismatch is a false result, not an error.
	VerifyPassword(ctx context.Context, id uuid.UUID, password string) (bool, error)

	// SetTwoFactorEnabled flips the two-factor flag on the identity.
	SetTwoFactorEnabled(ctx context.Context, id uuid.UUID, enabled bool) error

	// AuthenticatorSecret returns the stored Base32 authenticator secret,
	// or an empty string when none has been provisioned.
	AuthenticatorSecret(ctx context.Context, id uuid.UUID) (string, error)

	// SetAuthenticatorSecret replaces the authenticator secret and rotates
	// the security stamp.
	SetAuthenticatorSecret(ctx context.Context, id uuid.UUID, secret string) error

	// Roles returns the role names assigned to the identity, most
	// significant first. An identity may have no roles.
	Roles(ctx context.Context, id uuid.UUID) ([]string, error)
}
