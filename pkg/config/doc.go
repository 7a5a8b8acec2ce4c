// Package config loads application configuration from environment variables
// into plain structs.
//
// It combines github.com/joho/godotenv for .env file handling with
// github.com/caarlos0/env/v11 for tag-driven parsing, and caches every
// parsed struct type so configuration is read at most once per process.
//
// # Usage
//
// Describe the configuration as a struct with `env` tags:
//
//	type ServerConfig struct {
//	    Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
//	    ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// The default .env file in the working directory is applied before the first
// parse. Additional files can be layered explicitly, later files winning:
//
//	config.MustLoadEnv(".env", ".env.local")
//
// # Error Handling
//
// Returned errors wrap package sentinels for errors.Is checks:
//
//   - ErrParsingConfig – the environment cannot be parsed into the struct.
//   - ErrLoadingEnvFile – a requested .env file cannot be read.
//   - ErrNilPointer – a nil destination was passed to Load.
//
// # Testing Helpers
//
// ResetCache clears all cached values and ForceReloadConfig re-parses a
// single type, which is useful after changing the process environment in
// tests.
package config
