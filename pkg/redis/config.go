package redis

import "time"

// Config holds the Redis connection settings.
type Config struct {
	// ConnectionURL is a redis:// URL, e.g. "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// RetryAttempts is how many times Connect pings before giving up.
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryInterval is the pause between connection attempts.
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`

	// ConnectTimeout bounds the whole connection procedure.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
