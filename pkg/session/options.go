package session

import "time"

// settings carries the TTL knobs shared by both container kinds.
type settings struct {
	timeout       time.Duration
	resolution    time.Duration
	implicitSweep bool
	now           func() time.Time
}

// Option is a functional option for configuring a container.
type Option func(*settings)

// WithTimeout sets how long an untouched bag survives. Zero disables
// expiry entirely: the container becomes a pure passthrough store with no
// stamping and no sweeping.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithResolution sets the stamping and sweeping granularity. Access
// stamps are rewritten at most once per resolution, and implicit sweeps
// run at most once per resolution, trading at most that much staleness
// for bounded write volume. Should be a small fraction of the timeout.
func WithResolution(resolution time.Duration) Option {
	return func(s *settings) {
		s.resolution = resolution
	}
}

// WithImplicitSweep controls whether accesses trigger eviction passes on
// the resolution cadence. Disabled, entries expire only when Sweep is
// called explicitly. Enabled by default.
func WithImplicitSweep(enabled bool) Option {
	return func(s *settings) {
		s.implicitSweep = enabled
	}
}

// WithTimeSource replaces the wall clock, letting tests drive expiry
// without sleeping.
func WithTimeSource(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

func (s *settings) nowUnix() int64 {
	return s.now().Unix()
}

// stale reports whether a bag's stamp is old enough to rewrite.
func (s *settings) stale(lastAccess, now int64) bool {
	return lastAccess+int64(s.resolution/time.Second) < now
}

// expiryCutoff is the stamp below which an entry is expired. The
// resolution is factored in because stamps lag true access time by up to
// one resolution; entries accessed within the timeout must never go.
func (s *settings) expiryCutoff(now int64) int64 {
	return now - int64(s.timeout/time.Second) - int64(s.resolution/time.Second)
}
