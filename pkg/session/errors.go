package session

import "errors"

var (
	ErrNoSession       = errors.New("session: no session on request")
	ErrSessionNotFound = errors.New("session: not found")
	ErrSessionExpired  = errors.New("session: expired")
	ErrInvalidSession  = errors.New("session: invalid session record")
	ErrTokenGeneration = errors.New("session: token generation failed")
	ErrStoreFailure    = errors.New("session: store failure")
)
