package session

import "time"

// Config holds session settings.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// TTL is the session lifetime.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// SecureCookies sets the Secure flag on session cookies. Keep enabled
	// anywhere TLS terminates in front of the app.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// SweepInterval controls the memory store cleanup cadence.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the default session settings.
func DefaultConfig() Config {
	return Config{
		CookieName:    "sid",
		TTL:           24 * time.Hour,
		SecureCookies: false,
		SweepInterval: 5 * time.Minute,
	}
}
