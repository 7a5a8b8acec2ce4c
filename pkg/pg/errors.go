package pg

import "errors"

var (
	// ErrEmptyConnectionString means PG_CONN_URL was not set.
	ErrEmptyConnectionString = errors.New("postgres connection string is empty")
	// ErrInvalidConnectionString means PG_CONN_URL did not parse.
	ErrInvalidConnectionString = errors.New("postgres connection string is invalid")
	// ErrNotReady means no connection attempt succeeded within the retry
	// budget.
	ErrNotReady = errors.New("postgres is not reachable")
	// ErrHealthcheckFailed wraps a failed readiness ping.
	ErrHealthcheckFailed = errors.New("postgres ping failed")
)
