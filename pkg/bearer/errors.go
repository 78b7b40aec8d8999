package bearer

import "errors"

var (
	ErrMissingSigningKey = errors.New("bearer: missing signing key")
	ErrSigningKeyTooWeak = errors.New("bearer: signing key must be at least 32 bytes")
	ErrInvalidToken      = errors.New("bearer: invalid token")
	ErrExpiredToken      = errors.New("bearer: token is expired")
)
