package pg

import "time"

// Config carries the PostgreSQL pool settings read from the environment.
// The connection string is a regular pgx URL or DSN.
type Config struct {
	ConnectionString string `env:"PG_CONN_URL,required"`

	// Pool sizing and recycling, mapped straight onto pgxpool.Config.
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	// Retry knobs for Connect. Backoff grows linearly with the attempt
	// number.
	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
}
