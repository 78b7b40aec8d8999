package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/modules/auth"
	"github.com/dmitrymomot/authkit/pkg/bearer"
	"github.com/dmitrymomot/authkit/pkg/cookie"
	"github.com/dmitrymomot/authkit/pkg/session"
)

const testCookieSecret = "0123456789abcdef0123456789abcdef"

func newDispatcherFixture(t *testing.T) (*auth.Dispatcher, *bearer.Service, *session.Manager) {
	t.Helper()

	tokens, err := bearer.New([]byte(testCookieSecret), "authkit", "authkit", time.Hour)
	require.NoError(t, err)

	cookies, err := cookie.New([]string{testCookieSecret})
	require.NoError(t, err)
	sessions := session.NewManager(cookies)

	return auth.NewDispatcher(tokens, sessions), tokens, sessions
}

// issueSessionCookie creates a cookie session and returns the Set-Cookie
// header value to replay on later requests.
func issueSessionCookie(t *testing.T, sessions *session.Manager, id uuid.UUID, role string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	_, err := sessions.Issue(context.Background(), rec, id, role)
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestDispatcherAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid bearer token", func(t *testing.T) {
		t.Parallel()
		dispatcher, tokens, _ := newDispatcherFixture(t)
		id := uuid.New()
		token, err := tokens.Issue(id, "Administrator")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		principal, err := dispatcher.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, id, principal.IdentityID)
		assert.Equal(t, "Administrator", principal.Role)
		assert.Equal(t, auth.SchemeBearer, principal.Scheme)
	})

	t.Run("valid cookie session", func(t *testing.T) {
		t.Parallel()
		dispatcher, _, sessions := newDispatcherFixture(t)
		id := uuid.New()
		sessionCookie := issueSessionCookie(t, sessions, id, "Operator")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(sessionCookie)

		principal, err := dispatcher.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, id, principal.IdentityID)
		assert.Equal(t, "Operator", principal.Role)
		assert.Equal(t, auth.SchemeCookie, principal.Scheme)
	})

	t.Run("invalid bearer token never falls back to a valid cookie", func(t *testing.T) {
		t.Parallel()
		dispatcher, _, sessions := newDispatcherFixture(t)
		sessionCookie := issueSessionCookie(t, sessions, uuid.New(), "")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		r.AddCookie(sessionCookie)

		_, err := dispatcher.Authenticate(r)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("expired bearer token is rejected", func(t *testing.T) {
		t.Parallel()
		past := time.Now().Add(-2 * time.Hour)
		expiredIssuer, err := bearer.New([]byte(testCookieSecret), "authkit", "authkit", time.Hour,
			bearer.WithClock(func() time.Time { return past }))
		require.NoError(t, err)
		token, err := expiredIssuer.Issue(uuid.New(), "")
		require.NoError(t, err)

		dispatcher, _, _ := newDispatcherFixture(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		_, err = dispatcher.Authenticate(r)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		assert.ErrorIs(t, err, bearer.ErrExpiredToken)
	})

	t.Run("non-bearer authorization header uses the cookie path", func(t *testing.T) {
		t.Parallel()
		dispatcher, _, sessions := newDispatcherFixture(t)
		id := uuid.New()
		sessionCookie := issueSessionCookie(t, sessions, id, "")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		r.AddCookie(sessionCookie)

		principal, err := dispatcher.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, auth.SchemeCookie, principal.Scheme)
	})

	t.Run("no credentials", func(t *testing.T) {
		t.Parallel()
		dispatcher, _, _ := newDispatcherFixture(t)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := dispatcher.Authenticate(r)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		t.Parallel()
		dispatcher, _, sessions := newDispatcherFixture(t)
		sessionCookie := issueSessionCookie(t, sessions, uuid.New(), "")
		sessionCookie.Value += "x"

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(sessionCookie)

		_, err := dispatcher.Authenticate(r)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})
}

func TestDispatcherMiddleware(t *testing.T) {
	t.Parallel()

	dispatcher, tokens, _ := newDispatcherFixture(t)
	id := uuid.New()

	var captured *auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := auth.PrincipalFromContext(r.Context())
		require.NoError(t, err)
		captured = p
		w.WriteHeader(http.StatusNoContent)
	})
	handler := dispatcher.Middleware(next)

	t.Run("authenticated request reaches the handler", func(t *testing.T) {
		token, err := tokens.Issue(id, "Administrator")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, id, captured.IdentityID)
	})

	t.Run("unauthenticated request is stopped with 401", func(t *testing.T) {
		captured = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, captured)
	})
}

func TestPrincipalFromContext(t *testing.T) {
	t.Parallel()

	_, err := auth.PrincipalFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
