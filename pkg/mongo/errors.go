package mongo

import "errors"

var (
	// ErrEmptyConnectionURL means MONGODB_URL was not set.
	ErrEmptyConnectionURL = errors.New("mongo connection URL is empty")
	// ErrNotReady means no connection attempt succeeded within the retry
	// budget.
	ErrNotReady = errors.New("mongo is not reachable")
	// ErrHealthcheckFailed wraps a failed readiness ping.
	ErrHealthcheckFailed = errors.New("mongo ping failed")
)
