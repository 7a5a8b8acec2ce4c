package redis

import "time"

// Config carries the Redis connection settings read from the environment.
// The URL uses the standard scheme, e.g. "redis://:password@localhost:6379/0".
type Config struct {
	ConnectionURL string `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`

	// Retry knobs for Connect. The whole retry loop is additionally capped
	// by ConnectTimeout.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
