package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the given .env files. Files are
// applied in order and later files override earlier ones as well as values
// already present in the process environment. Without arguments it loads the
// default .env file from the working directory, leaving existing variables
// untouched.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics if any file cannot be loaded.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}
