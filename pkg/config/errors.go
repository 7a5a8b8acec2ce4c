package config

import "errors"

var (
	// ErrParsingConfig wraps env tag parsing failures, including missing
	// required variables.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	// ErrLoadingEnvFile wraps failures to read an explicitly named .env file.
	ErrLoadingEnvFile = errors.New("failed to load env file")
	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
