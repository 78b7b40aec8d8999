package recovery

import (
	"context"

	"github.com/google/uuid"
)

// Store persists recovery code hashes per identity. Implementations must make
// ConsumeHash atomic: two concurrent calls with the same hash may not both
// succeed.
type Store interface {
	// ReplaceAll discards every stored hash for the identity and stores the
	// new set as unconsumed.
	ReplaceAll(ctx context.Context, identityID uuid.UUID, hashes []string) error

	// ConsumeHash marks the matching unconsumed hash as consumed and reports
	// whether a match was found. A hash can be consumed at most once.
	ConsumeHash(ctx context.Context, identityID uuid.UUID, hash string) (bool, error)

	// CountUnconsumed returns how many codes remain usable for the identity.
	CountUnconsumed(ctx context.Context, identityID uuid.UUID) (int, error)
}
