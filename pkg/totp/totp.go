package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// Digits is the code length (RFC 6238 default).
	Digits = 6
	// Period is the step size in seconds (RFC 6238 default).
	Period = 30
	// DriftSteps is how many steps before and after the current one are
	// accepted to tolerate client clock skew.
	DriftSteps = 1
)

var codeRegex = regexp.MustCompile(`^\d{6}$`)

// Normalize strips the spaces and hyphens users commonly type between code
// groups. It performs no validation; pass the result to Verify.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, " ", "")
	code = strings.ReplaceAll(code, "-", "")
	return code
}

// Verify reports whether the submitted code is valid for the secret at the
// given time. The code is normalized before checking, and the previous,
// current and next steps are all tried. All candidate comparisons run in
// constant time with no early exit.
func Verify(secret, code string, at time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = Normalize(code)
	if !codeRegex.MatchString(code) {
		return false, ErrMalformedCode
	}

	counter := at.Unix() / Period

	match := 0
	for step := -DriftSteps; step <= DriftSteps; step++ {
		candidate := fmt.Sprintf("%06d", hotp(key, counter+int64(step)))
		match |= subtle.ConstantTimeCompare([]byte(candidate), []byte(code))
	}

	return match == 1, nil
}

// Generate computes the code for the step containing the given time. Used by
// tests and by provisioning flows that display the expected code.
func Generate(secret string, at time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", hotp(key, at.Unix()/Period)), nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" {
		return nil, ErrInvalidSecret
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based one-time password computation,
// including the dynamic truncation step.
func hotp(key []byte, counter int64) int {
	// Counter is hashed as a big-endian 8-byte value (RFC 4226 section 5.1).
	var counterBytes [8]byte
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: low 4 bits of the last byte select the offset,
	// the MSB is cleared to keep the value positive.
	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]) << 16) |
		(int(sum[offset+2]) << 8) |
		int(sum[offset+3])

	return code % 1000000
}
