package lockout

import "time"

// Config holds lockout policy settings.
type Config struct {
	// MaxAttempts is the number of consecutive failures that triggers a lock.
	MaxAttempts int `env:"LOCKOUT_MAX_ATTEMPTS" envDefault:"5"`

	// LockoutPeriod is how long the identity stays locked once tripped.
	LockoutPeriod time.Duration `env:"LOCKOUT_PERIOD" envDefault:"5m"`

	// CounterWindow bounds how long failures keep counting toward the
	// threshold. Counters reset on successful authentication regardless.
	CounterWindow time.Duration `env:"LOCKOUT_COUNTER_WINDOW" envDefault:"15m"`
}

// DefaultConfig returns the default lockout policy: 5 attempts, 5 minute
// lock, 15 minute counting window.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   5,
		LockoutPeriod: 5 * time.Minute,
		CounterWindow: 15 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if c.LockoutPeriod <= 0 || c.CounterWindow <= 0 {
		return ErrInvalidPeriod
	}
	return nil
}
