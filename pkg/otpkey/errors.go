package otpkey

import "errors"

var (
	ErrEmptySecret      = errors.New("otpkey: secret is empty")
	ErrInvalidSecret    = errors.New("otpkey: secret is not valid base32")
	ErrMissingIssuer    = errors.New("otpkey: missing issuer")
	ErrMissingAccount   = errors.New("otpkey: missing account name")
	ErrSecretGeneration = errors.New("otpkey: failed to generate secret")
)
