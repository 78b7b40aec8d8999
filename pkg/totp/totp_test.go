package totp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/otpkey"
	"github.com/dmitrymomot/authkit/pkg/totp"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "123456", want: "123456"},
		{in: "123 456", want: "123456"},
		{in: "123-456", want: "123456"},
		{in: " 123-4 56 ", want: "123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, totp.Normalize(tt.in))
	}
}

func TestVerifyCurrentWindow(t *testing.T) {
	t.Parallel()

	secret, err := otpkey.Generate()
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	code, err := totp.Generate(secret, now)
	require.NoError(t, err)

	ok, err := totp.Verify(secret, code, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySeparatorEquivalence(t *testing.T) {
	t.Parallel()

	secret, err := otpkey.Generate()
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	code, err := totp.Generate(secret, now)
	require.NoError(t, err)

	variants := []string{
		code,
		code[:3] + " " + code[3:],
		code[:3] + "-" + code[3:],
	}
	for _, v := range variants {
		ok, err := totp.Verify(secret, v, now)
		require.NoError(t, err)
		assert.True(t, ok, "variant %q must verify", v)
	}
}

func TestVerifyDriftWindow(t *testing.T) {
	t.Parallel()

	secret, err := otpkey.Generate()
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		codeAt time.Time
		want   bool
	}{
		{name: "previous step accepted", codeAt: now.Add(-totp.Period * time.Second), want: true},
		{name: "current step accepted", codeAt: now, want: true},
		{name: "next step accepted", codeAt: now.Add(totp.Period * time.Second), want: true},
		{name: "two steps back rejected", codeAt: now.Add(-2 * totp.Period * time.Second), want: false},
		{name: "two steps ahead rejected", codeAt: now.Add(2 * totp.Period * time.Second), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, err := totp.Generate(secret, tt.codeAt)
			require.NoError(t, err)

			ok, err := totp.Verify(secret, code, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerifyMalformedCode(t *testing.T) {
	t.Parallel()

	secret, err := otpkey.Generate()
	require.NoError(t, err)

	for _, code := range []string{"", "12345", "1234567", "12345a", "abcdef"} {
		_, err := totp.Verify(secret, code, time.Now())
		assert.ErrorIs(t, err, totp.ErrMalformedCode, "code %q", code)
	}
}

func TestVerifyInvalidSecret(t *testing.T) {
	t.Parallel()

	_, err := totp.Verify("not-base32!", "123456", time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)

	_, err = totp.Verify("", "123456", time.Now())
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)
}

func TestGenerateKnownVectors(t *testing.T) {
	t.Parallel()

	// RFC 6238 appendix B vectors, truncated to 6 digits. The reference
	// secret is ASCII "12345678901234567890" in base32.
	const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	tests := []struct {
		at   int64
		want string
	}{
		{at: 59, want: "287082"},
		{at: 1111111109, want: "081804"},
		{at: 1234567890, want: "005924"},
		{at: 2000000000, want: "279037"},
	}

	for _, tt := range tests {
		code, err := totp.Generate(secret, time.Unix(tt.at, 0))
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "at unix %d", tt.at)
	}
}
