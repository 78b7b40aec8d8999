package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type directoryRecord struct {
	identity     Identity
	passwordHash []byte
	secret       string
	roles        []string
}

// MemoryDirectory is an in-memory Directory backed by bcrypt password
// hashes. It is suitable for tests and single-process deployments; anything
// multi-instance needs a shared backend.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*directoryRecord
	byEmail map[string]uuid.UUID
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		byID:    make(map[uuid.UUID]*directoryRecord),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Register creates an identity with the given email, password, and roles
// and returns its id.
func (d *MemoryDirectory) Register(ctx context.Context, email, password string, roles ...string) (uuid.UUID, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return uuid.Nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[email]; exists {
		return uuid.Nil, fmt.Errorf("email already registered: %s", email)
	}

	id := uuid.New()
	d.byID[id] = &directoryRecord{
		identity: Identity{
			ID:            id,
			Email:         email,
			SecurityStamp: uuid.NewString(),
		},
		passwordHash: hash,
		roles:        roles,
	}
	d.byEmail[email] = id
	return id, nil
}

// FindByEmail implements Directory.
func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	identity := d.byID[id].identity
	return &identity, nil
}

// FindByID implements Directory.
func (d *MemoryDirectory) FindByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.byID[id]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	identity := rec.identity
	return &identity, nil
}

// VerifyPassword implements Directory.
func (d *MemoryDirectory) VerifyPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	d.mu.RLock()
	rec, ok := d.byID[id]
	d.mu.RUnlock()
	if !ok {
		return false, ErrIdentityNotFound
	}

	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// SetTwoFactorEnabled implements Directory.
func (d *MemoryDirectory) SetTwoFactorEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.byID[id]
	if !ok {
		return ErrIdentityNotFound
	}
	rec.identity.TwoFactorEnabled = enabled
	return nil
}

// AuthenticatorSecret implements Directory.
func (d *MemoryDirectory) AuthenticatorSecret(ctx context.Context, id uuid.UUID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.byID[id]
	if !ok {
		return "", ErrIdentityNotFound
	}
	return rec.secret, nil
}

// SetAuthenticatorSecret implements Directory.
func (d *MemoryDirectory) SetAuthenticatorSecret(ctx context.Context, id uuid.UUID, secret string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.byID[id]
	if !ok {
		return ErrIdentityNotFound
	}
	rec.secret = secret
	rec.identity.SecurityStamp = uuid.NewString()
	return nil
}

// Roles implements Directory.
func (d *MemoryDirectory) Roles(ctx context.Context, id uuid.UUID) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.byID[id]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	roles := make([]string, len(rec.roles))
	copy(roles, rec.roles)
	return roles, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
