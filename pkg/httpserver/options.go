package httpserver

import (
	"log/slog"
	"time"
)

// Option adjusts a Server during construction. Options with invalid values
// (empty address, non-positive duration, nil logger or hook) are ignored so
// that partially populated configs fall back to the defaults.
type Option func(*Server)

// WithAddr sets the listen address, e.g. ":8080" or "127.0.0.1:9000".
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithReadTimeout bounds how long reading a full request may take.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// WithWriteTimeout bounds how long writing a response may take.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithIdleTimeout bounds how long a keep-alive connection may sit idle.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests
// to finish once a stop is requested.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the logger used for lifecycle messages and passed to hooks.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStartHook registers fn to run once the listener is up. Hooks run in
// registration order on the Run goroutine, so they should return quickly.
func WithStartHook(fn func(*slog.Logger)) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}

// WithStopHook registers fn to run after the drain completes, whether or
// not it succeeded.
func WithStopHook(fn func(*slog.Logger)) Option {
	return func(s *Server) {
		if fn != nil {
			s.onStop = append(s.onStop, fn)
		}
	}
}
