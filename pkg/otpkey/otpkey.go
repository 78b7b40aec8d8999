package otpkey

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// secretLength is 20 random bytes (160 bits), the RFC 4226 recommended
// secret size and comfortably above the 128-bit minimum.
const secretLength = 20

// ValidSecretRegex matches Base32 without padding: uppercase A-Z and digits 2-7.
var ValidSecretRegex = regexp.MustCompile("^[A-Z2-7]+$")

// Generate returns a new Base32-encoded shared secret without padding.
func Generate() (string, error) {
	buf := make([]byte, secretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrSecretGeneration, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}

// Format renders a raw secret for manual entry: lower-cased groups of four
// characters separated by single spaces, with any trailing partial group
// appended as-is. Stripping the spaces and upper-casing recovers the raw
// secret exactly.
func Format(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptySecret
	}

	var b strings.Builder
	b.Grow(len(raw) + len(raw)/4)
	for i := 0; i < len(raw); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 4
		if end > len(raw) {
			end = len(raw)
		}
		b.WriteString(raw[i:end])
	}

	return strings.ToLower(b.String()), nil
}

// ProvisioningURI builds the otpauth:// URI that authenticator apps consume.
// Parameter order is fixed (secret, issuer, algorithm, digits, period) for
// compatibility with apps that parse the query positionally; the raw secret
// is embedded unescaped since Base32 is URL-safe by construction.
func ProvisioningURI(issuer, account, raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptySecret
	}
	if !ValidSecretRegex.MatchString(raw) {
		return "", ErrInvalidSecret
	}
	if issuer == "" {
		return "", ErrMissingIssuer
	}
	if account == "" {
		return "", ErrMissingAccount
	}

	return fmt.Sprintf(
		"otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=SHA1&digits=6&period=30",
		url.PathEscape(issuer),
		url.PathEscape(account),
		raw,
		url.QueryEscape(issuer),
	), nil
}
