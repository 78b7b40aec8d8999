package totp

import "errors"

var (
	ErrInvalidSecret = errors.New("totp: secret is not valid base32")
	ErrMalformedCode = errors.New("totp: code must be exactly 6 digits")
)
