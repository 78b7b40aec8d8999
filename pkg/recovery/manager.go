package recovery

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// codeAlphabet avoids visually ambiguous characters (0/o, 1/l) so codes
// survive being read off a printout.
const codeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

const (
	groupLength = 5
	groupCount  = 2
)

// Manager generates and consumes recovery codes against a Store.
type Manager struct {
	store Store
}

// NewManager creates a Manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Replace generates n fresh codes for the identity, persists their hashes and
// discards all previously issued codes. The returned plaintext codes are not
// recoverable afterwards.
func (m *Manager) Replace(ctx context.Context, identityID uuid.UUID, n int) ([]string, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}

	codes := make([]string, n)
	hashes := make([]string, n)
	for i := 0; i < n; i++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		codes[i] = code
		hashes[i] = HashCode(NormalizeCode(code))
	}

	if err := m.store.ReplaceAll(ctx, identityID, hashes); err != nil {
		return nil, err
	}

	return codes, nil
}

// Consume validates a submitted code against the identity's unconsumed set
// and marks the match consumed. Returns false on no match; the store
// guarantees at-most-once consumption under concurrency.
func (m *Manager) Consume(ctx context.Context, identityID uuid.UUID, code string) (bool, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return false, nil
	}
	return m.store.ConsumeHash(ctx, identityID, HashCode(normalized))
}

// Remaining reports how many unconsumed codes the identity still has.
func (m *Manager) Remaining(ctx context.Context, identityID uuid.UUID) (int, error) {
	return m.store.CountUnconsumed(ctx, identityID)
}

// NormalizeCode lower-cases a submitted code and strips the separators users
// tend to type or omit.
func NormalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "-", "")
	return code
}

// HashCode returns the hex-encoded SHA-256 digest stored in place of the
// plaintext code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// generateCode produces a code like "x7km2-p9wth": two hyphen-separated
// groups of five alphabet characters. The hyphen is presentational only and
// removed during normalization.
func generateCode() (string, error) {
	raw := make([]byte, groupLength*groupCount)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Join(ErrCodeGeneration, err)
	}

	var b strings.Builder
	b.Grow(groupLength*groupCount + groupCount - 1)
	for i, c := range raw {
		if i > 0 && i%groupLength == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
	}
	return b.String(), nil
}
