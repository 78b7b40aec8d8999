package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/session"
)

func newManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	cookies, err := cookie.New([]string{"test-secret-0123456789abcdefghij"})
	require.NoError(t, err)
	return session.NewManager(cookies, opts...)
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestIssueAndResolve(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	identityID := uuid.New()

	w := httptest.NewRecorder()
	issued, err := m.Issue(context.Background(), w, identityID, "Admin")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)

	resolved, err := m.Resolve(context.Background(), requestWithCookies(w))
	require.NoError(t, err)
	assert.Equal(t, identityID, resolved.IdentityID)
	assert.Equal(t, "Admin", resolved.Role)
	assert.Equal(t, issued.ID, resolved.ID)
}

func TestResolveWithoutCookie(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Resolve(context.Background(), r)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestResolveUnknownToken(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	// Issue through one manager, resolve through another sharing the cookie
	// secret but not the store.
	w := httptest.NewRecorder()
	_, err := m.Issue(context.Background(), w, uuid.New(), "User")
	require.NoError(t, err)

	other := newManager(t)
	_, err = other.Resolve(context.Background(), requestWithCookies(w))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestResolveExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	m := newManager(t,
		session.WithConfig(session.Config{CookieName: "sid", TTL: time.Minute}),
		session.WithClock(func() time.Time { return clock() }),
	)

	w := httptest.NewRecorder()
	_, err := m.Issue(context.Background(), w, uuid.New(), "User")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = m.Resolve(context.Background(), requestWithCookies(w))
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	// The expired record is gone even when asked again before its sweep.
	_, err = m.Resolve(context.Background(), requestWithCookies(w))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestDestroy(t *testing.T) {
	t.Parallel()

	m := newManager(t)

	w := httptest.NewRecorder()
	_, err := m.Issue(context.Background(), w, uuid.New(), "User")
	require.NoError(t, err)

	destroyRec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), destroyRec, requestWithCookies(w)))

	cleared := destroyRec.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, -1, cleared[0].MaxAge)

	_, err = m.Resolve(context.Background(), requestWithCookies(w))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRevokeAll(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	identityID := uuid.New()

	first := httptest.NewRecorder()
	_, err := m.Issue(context.Background(), first, identityID, "User")
	require.NoError(t, err)
	second := httptest.NewRecorder()
	_, err = m.Issue(context.Background(), second, identityID, "User")
	require.NoError(t, err)

	require.NoError(t, m.RevokeAll(context.Background(), identityID))

	_, err = m.Resolve(context.Background(), requestWithCookies(first))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = m.Resolve(context.Background(), requestWithCookies(second))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
