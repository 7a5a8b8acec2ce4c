package httpserver

import "errors"

var (
	// ErrAlreadyRunning is returned by Run when the server is already serving.
	ErrAlreadyRunning = errors.New("http server already running")
	// ErrServeFailed wraps a listener or serve failure that ended Run early.
	ErrServeFailed = errors.New("http server failed")
	// ErrShutdownFailed wraps errors from an unclean drain, typically a
	// shutdown timeout with requests still in flight.
	ErrShutdownFailed = errors.New("http server shutdown failed")
)
