package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/config"
)

type baseFileCfg struct {
	Cookie string        `env:"SESSENV_COOKIE"`
	Sweep  time.Duration `env:"SESSENV_SWEEP"`
	Limit  int           `env:"SESSENV_LIMIT"`
	Secure bool          `env:"SESSENV_SECURE"`
	Tags   []string      `env:"SESSENV_TAGS" envSeparator:","`
	MOTD   string        `env:"SESSENV_MOTD"`
	Blank  string        `env:"SESSENV_BLANK"`
	Source string        `env:"SESSENV_SOURCE"`
}

type layeredFileCfg struct {
	Cookie string        `env:"SESSENV_COOKIE"`
	Sweep  time.Duration `env:"SESSENV_SWEEP"`
	Source string        `env:"SESSENV_SOURCE"`
	Local  string        `env:"SESSENV_LOCAL"`
}

func clearFixtureEnv() {
	for _, key := range []string{
		"SESSENV_COOKIE", "SESSENV_SWEEP", "SESSENV_LIMIT", "SESSENV_SECURE",
		"SESSENV_TAGS", "SESSENV_MOTD", "SESSENV_BLANK", "SESSENV_SOURCE",
		"SESSENV_LOCAL",
	} {
		os.Unsetenv(key)
	}
	config.ResetCache()
}

func TestLoadEnvFile(t *testing.T) {
	clearFixtureEnv()

	require.NoError(t, config.LoadEnv("testdata/base.env"))

	var c baseFileCfg
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "visitor_id", c.Cookie)
	assert.Equal(t, 7*time.Minute, c.Sweep)
	assert.Equal(t, 250, c.Limit)
	assert.True(t, c.Secure)
	assert.Equal(t, []string{"carts", "prefs", "flags"}, c.Tags)
	assert.Equal(t, "welcome back", c.MOTD, "quotes are stripped")
	assert.Empty(t, c.Blank)
	assert.Equal(t, "base", c.Source)
}

func TestLoadEnvLayering(t *testing.T) {
	clearFixtureEnv()

	// Later files win, and explicit paths override the process environment.
	t.Setenv("SESSENV_SOURCE", "process")
	require.NoError(t, config.LoadEnv("testdata/base.env", "testdata/local.env"))

	var c layeredFileCfg
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "dev_visitor", c.Cookie, "local.env overrides base.env")
	assert.Equal(t, "local", c.Source, "explicit files override process values")
	assert.Equal(t, "yes", c.Local, "keys unique to the last file load")
	assert.Equal(t, 7*time.Minute, c.Sweep, "keys unique to the first file survive")
}

func TestLoadEnvMissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/nope.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestMustLoadEnv(t *testing.T) {
	assert.NotPanics(t, func() { config.MustLoadEnv("testdata/base.env") })
	assert.Panics(t, func() { config.MustLoadEnv("testdata/nope.env") })
}

func TestLoadEnvDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("SESSENV_DEFAULT_KEY=from_file\nSESSENV_DEFAULT_PRESET=file_value\n"), 0o644))
	t.Chdir(dir)

	os.Unsetenv("SESSENV_DEFAULT_KEY")
	t.Setenv("SESSENV_DEFAULT_PRESET", "process_value")

	require.NoError(t, config.LoadEnv())
	assert.Equal(t, "from_file", os.Getenv("SESSENV_DEFAULT_KEY"))
	assert.Equal(t, "process_value", os.Getenv("SESSENV_DEFAULT_PRESET"),
		"the default .env must not override process values")

	os.Unsetenv("SESSENV_DEFAULT_KEY")
}
