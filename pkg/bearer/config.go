package bearer

import "time"

// Config holds bearer token settings. The signing key has no default on
// purpose: it must come from the environment or a secret manager.
type Config struct {
	SigningKey string        `env:"BEARER_SIGNING_KEY,required"`
	Issuer     string        `env:"BEARER_ISSUER" envDefault:"authkit"`
	Audience   string        `env:"BEARER_AUDIENCE" envDefault:"authkit"`
	TTL        time.Duration `env:"BEARER_TTL" envDefault:"1h"`
}

// NewFromConfig creates a Service from the provided Config.
func NewFromConfig(cfg Config) (*Service, error) {
	return New([]byte(cfg.SigningKey), cfg.Issuer, cfg.Audience, cfg.TTL)
}
