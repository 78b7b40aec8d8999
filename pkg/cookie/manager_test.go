package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/cookie"
)

const (
	primarySecret = "primary-secret-0123456789abcdefg"
	rotatedSecret = "rotated-secret-0123456789abcdefg"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNewSecretValidation(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"too-short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}

func TestSetGetRoundTrip(t *testing.T) {
	t.Parallel()

	m := newManager(t, primarySecret)
	w := httptest.NewRecorder()
	m.Set(w, "name", "value")

	got, err := m.Get(requestWithCookies(w), "name")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = m.Get(requestWithCookies(w), "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	m := newManager(t, primarySecret)
	w := httptest.NewRecorder()
	m.SetSigned(w, "sid", "token-value")

	// On the wire the value must not be the plaintext token.
	raw, err := m.Get(requestWithCookies(w), "sid")
	require.NoError(t, err)
	assert.NotEqual(t, "token-value", raw)

	got, err := m.GetSigned(requestWithCookies(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestSignedRejectsTampering(t *testing.T) {
	t.Parallel()

	m := newManager(t, primarySecret)
	w := httptest.NewRecorder()
	m.SetSigned(w, "sid", "token-value")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		c.Value = strings.Replace(c.Value, "|", "x|", 1)
		r.AddCookie(c)
	}

	_, err := m.GetSigned(r, "sid")
	assert.Error(t, err)
}

func TestSignedKeyRotation(t *testing.T) {
	t.Parallel()

	old := newManager(t, rotatedSecret)
	w := httptest.NewRecorder()
	old.SetSigned(w, "sid", "token-value")

	// New deployment signs with a fresh key but still verifies the old one.
	rotated := newManager(t, primarySecret, rotatedSecret)
	got, err := rotated.GetSigned(requestWithCookies(w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)

	// A manager without the old key rejects the cookie.
	fresh := newManager(t, primarySecret)
	_, err = fresh.GetSigned(requestWithCookies(w), "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t, primarySecret)
	w := httptest.NewRecorder()
	m.Delete(w, "sid")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
