package clientid

import "time"

// Config holds identity manager configuration
type Config struct {
	CookieName string         `env:"CLIENTID_COOKIE_NAME" envDefault:""`
	Secret     string         `env:"CLIENTID_SECRET" envDefault:""`
	ThirdParty bool           `env:"CLIENTID_THIRD_PARTY" envDefault:"false"`
	PostOnly   bool           `env:"CLIENTID_POST_ONLY" envDefault:"false"`
	Lifetime   *time.Duration `env:"CLIENTID_COOKIE_LIFETIME"`
	Secure     bool           `env:"CLIENTID_COOKIE_SECURE" envDefault:"false"`
	HTTPOnly   bool           `env:"CLIENTID_COOKIE_HTTP_ONLY" envDefault:"true"`
	Domain     string         `env:"CLIENTID_COOKIE_DOMAIN" envDefault:""`
	Path       string         `env:"CLIENTID_COOKIE_PATH" envDefault:"/"`
}

// DefaultConfig returns default identity manager configuration
func DefaultConfig() Config {
	return Config{
		CookieName: "",
		Secret:     "",
		ThirdParty: false,
		PostOnly:   false,
		Lifetime:   nil,
		Secure:     false,
		HTTPOnly:   true,
		Domain:     "",
		Path:       "/",
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// A nil Lifetime keeps browser-session cookies; a zero Lifetime makes the
// cookie effectively permanent.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := make([]Option, 0, 10)

	if cfg.CookieName != "" {
		configOpts = append(configOpts, WithCookieName(cfg.CookieName))
	}
	if cfg.Secret != "" {
		configOpts = append(configOpts, WithSecret(cfg.Secret))
	}
	if cfg.ThirdParty {
		configOpts = append(configOpts, WithThirdParty(true))
	}
	if cfg.PostOnly {
		configOpts = append(configOpts, WithPostOnly(true))
	}
	if cfg.Lifetime != nil {
		if *cfg.Lifetime == 0 {
			configOpts = append(configOpts, WithPermanentLifetime())
		} else {
			configOpts = append(configOpts, WithLifetime(*cfg.Lifetime))
		}
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(cfg.Secure))
	}
	configOpts = append(configOpts, WithHTTPOnly(cfg.HTTPOnly))
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
