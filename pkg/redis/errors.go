package redis

import "errors"

var (
	// ErrEmptyConnectionURL means REDIS_URL was not set.
	ErrEmptyConnectionURL = errors.New("redis connection URL is empty")
	// ErrInvalidConnectionURL means REDIS_URL did not parse.
	ErrInvalidConnectionURL = errors.New("redis connection URL is invalid")
	// ErrNotReady means no connection attempt succeeded within the retry
	// budget.
	ErrNotReady = errors.New("redis is not reachable")
	// ErrHealthcheckFailed wraps a failed readiness ping.
	ErrHealthcheckFailed = errors.New("redis ping failed")
)
