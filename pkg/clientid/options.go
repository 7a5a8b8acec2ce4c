package clientid

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithCookieName sets the identity cookie name. The name must consist of
// letters, digits, and underscores.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.cookieName = name
	}
}

// WithSecret sets the signing secret. All instances that should accept
// each other's tokens must share the same secret and cookie name.
// Changing the secret invalidates every token issued under the old one.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		m.secret = secret
	}
}

// WithThirdParty puts the manager in third-party mode: the identity
// cookie is issued by upstream infrastructure, so this manager trusts the
// value verbatim and never mints or writes one itself.
func WithThirdParty(enabled bool) Option {
	return func(m *Manager) {
		m.thirdParty = enabled
	}
}

// WithPostOnly restricts minting fresh tokens to POST requests. Existing
// valid tokens are still honored on any method.
func WithPostOnly(enabled bool) Option {
	return func(m *Manager) {
		m.postOnly = enabled
	}
}

// WithLifetime sets a finite cookie lifetime. The cookie is rewritten on
// every request so the expiry window slides with visitor activity.
func WithLifetime(d time.Duration) Option {
	return func(m *Manager) {
		m.lifetime = &d
	}
}

// WithPermanentLifetime makes the cookie effectively permanent by pinning
// its expiry far in the future.
func WithPermanentLifetime() Option {
	return func(m *Manager) {
		var d time.Duration
		m.lifetime = &d
	}
}

// WithSecure sets the Secure cookie attribute.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithHTTPOnly sets the HttpOnly cookie attribute. Enabled by default.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) {
		m.httpOnly = httpOnly
	}
}

// WithDomain sets the cookie Domain attribute.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie Path attribute. Defaults to "/".
func WithPath(path string) Option {
	return func(m *Manager) {
		m.path = path
	}
}

// WithLogger sets the logger used for policy warnings. Defaults to a
// discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}
