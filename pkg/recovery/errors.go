package recovery

import "errors"

var (
	ErrInvalidCount   = errors.New("recovery: code count must be positive")
	ErrCodeGeneration = errors.New("recovery: failed to generate code")
)
