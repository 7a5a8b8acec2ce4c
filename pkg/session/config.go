package session

import "time"

// Config holds container configuration
type Config struct {
	// Timeout is how long an untouched bag survives (0 disables expiry)
	Timeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"1h"`

	// Resolution bounds how often stamps are rewritten and sweeps run;
	// keep it a small fraction of Timeout
	Resolution time.Duration `env:"SESSION_RESOLUTION" envDefault:"10m"`

	// ImplicitSweep lets accesses trigger eviction passes
	ImplicitSweep bool `env:"SESSION_IMPLICIT_SWEEP" envDefault:"true"`

	// SweepInterval drives the optional background sweeper (0 to disable)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"0"`
}

// DefaultConfig returns default container configuration
func DefaultConfig() Config {
	return Config{
		Timeout:       time.Hour,
		Resolution:    10 * time.Minute,
		ImplicitSweep: true,
		SweepInterval: 0,
	}
}

func (c Config) options() []Option {
	return []Option{
		WithTimeout(c.Timeout),
		WithResolution(c.Resolution),
		WithImplicitSweep(c.ImplicitSweep),
	}
}
