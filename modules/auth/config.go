package auth

import "time"

// Config holds the tunables of the authentication flow.
type Config struct {
	// Issuer is the application name stamped into provisioning URIs and
	// shown by authenticator apps next to the account.
	Issuer string `env:"AUTH_ISSUER" envDefault:"GestApp"`

	// ChallengeTTL bounds how long a password-verified login may wait for
	// its second factor.
	ChallengeTTL time.Duration `env:"AUTH_CHALLENGE_TTL" envDefault:"5m"`

	// RecoveryCodeCount is the size of a freshly generated recovery-code
	// batch.
	RecoveryCodeCount int `env:"AUTH_RECOVERY_CODE_COUNT" envDefault:"10"`

	// QRSize is the pixel edge of generated QR code images.
	QRSize int `env:"AUTH_QR_SIZE" envDefault:"256"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Issuer:            "GestApp",
		ChallengeTTL:      5 * time.Minute,
		RecoveryCodeCount: 10,
		QRSize:            256,
	}
}
