package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/cookie"
)

// Manager issues and resolves cookie-backed sessions.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	config  Config
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithClock overrides the time source for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a session manager. The cookie manager is required since
// the session token always travels in a signed cookie.
func NewManager(cookies *cookie.Manager, opts ...Option) *Manager {
	m := &Manager{
		cookies: cookies,
		config:  DefaultConfig(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.SweepInterval)
	}
	return m
}

// Issue creates a session for the identity and sets the session cookie.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, identityID uuid.UUID, role string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sess := New(token, identityID, role, m.config.TTL)
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	opts := []cookie.Option{
		cookie.WithMaxAge(int(m.config.TTL.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if m.config.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}
	m.cookies.SetSigned(w, m.config.CookieName, token, opts...)

	return sess, nil
}

// Resolve returns the session referenced by the request cookie. Expired
// sessions are deleted and reported as ErrSessionExpired.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.cookies.GetSigned(r, m.config.CookieName)
	if err != nil {
		return nil, errors.Join(ErrNoSession, err)
	}

	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if sess.ExpiredAt(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Destroy deletes the session referenced by the request and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.cookies.GetSigned(r, m.config.CookieName); err == nil && token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	m.cookies.Delete(w, m.config.CookieName)
	return nil
}

// RevokeAll deletes every session belonging to the identity, for use when
// credentials or second-factor settings change.
func (m *Manager) RevokeAll(ctx context.Context, identityID uuid.UUID) error {
	return m.store.DeleteByIdentityID(ctx, identityID)
}

// generateToken returns 32 bytes of crypto/rand as base64url.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
