package lockout

import "errors"

var (
	ErrInvalidMaxAttempts = errors.New("lockout: max attempts must be at least 1")
	ErrInvalidPeriod      = errors.New("lockout: periods must be positive")
	ErrStoreUnavailable   = errors.New("lockout: store unavailable")
)
