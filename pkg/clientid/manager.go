package clientid

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

// permanentExpiry marks cookies configured with a zero lifetime. The date
// predates the 32-bit time_t rollover so legacy clients store it intact.
var permanentExpiry = time.Date(2038, time.January, 19, 0, 0, 0, 0, time.UTC)

// staleExpires is sent alongside every cookie write so shared caches never
// replay one visitor's identity to another.
const staleExpires = "Mon, 26 Jul 1997 05:00:00 GMT"

var cookieNameRx = regexp.MustCompile(`^[0-9A-Za-z_]+$`)

// Manager mints, validates, and transports visitor identity tokens over a
// single cookie. The zero value is not usable; construct with New or
// NewFromConfig.
type Manager struct {
	cookieName string
	secret     string
	key        []byte
	thirdParty bool
	postOnly   bool
	lifetime   *time.Duration
	secure     bool
	httpOnly   bool
	domain     string
	path       string
	log        *slog.Logger
}

// New creates a Manager. Without options it issues browser-session cookies
// under a generated name, signed with a random per-process secret, which
// means identities do not survive a restart. Production deployments should
// set WithCookieName and WithSecret.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		cookieName: defaultCookieName(),
		httpOnly:   true,
		path:       "/",
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}

	if !cookieNameRx.MatchString(m.cookieName) {
		return nil, errors.Join(ErrInvalidCookieName, fmt.Errorf("cookie name %q", m.cookieName))
	}
	if m.secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		m.secret = secret
	}

	key, err := deriveSigningKey(m.secret, m.cookieName)
	if err != nil {
		return nil, err
	}
	m.key = key
	return m, nil
}

// CookieName returns the name of the identity cookie this manager owns.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// ClientID resolves the visitor identity for the request. A valid token
// already present (in the pending response or the request cookie) is
// returned as is; otherwise a fresh token is minted and attached to the
// response. ErrMissingClientID is returned when policy forbids minting:
// third-party mode always, post-only mode on non-POST requests.
//
// With a finite positive cookie lifetime the cookie is rewritten on every
// request so the expiry window tracks activity instead of first issue.
func (m *Manager) ClientID(w http.ResponseWriter, r *http.Request) (string, error) {
	if token, ok := m.ReadToken(w, r); ok {
		if !m.thirdParty && m.lifetime != nil && *m.lifetime > 0 {
			m.WriteToken(w, r, token)
		}
		return token, nil
	}

	if m.thirdParty || (m.postOnly && r.Method != http.MethodPost) {
		return "", ErrMissingClientID
	}

	token, err := m.Generate()
	if err != nil {
		return "", err
	}
	m.WriteToken(w, r, token)
	return token, nil
}

// ReadToken extracts the identity token for the request, consulting a
// cookie already staged on the response before the request's own cookie
// so a token minted earlier in the same request wins. In third-party mode
// the value is trusted verbatim; otherwise tokens that fail Verify are
// dropped and ok is false.
func (m *Manager) ReadToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := m.pendingToken(w)
	if !ok {
		c, err := r.Cookie(m.cookieName)
		if err != nil || c.Value == "" {
			return "", false
		}
		token = c.Value
	}
	if m.thirdParty {
		return token, true
	}
	if !m.Verify(token) {
		return "", false
	}
	return token, true
}

// WriteToken stages the identity cookie on the response. The token is
// written as given; readers are responsible for validation. In third-party
// mode nothing is written and the attempt is logged, since the cookie
// belongs to upstream infrastructure.
func (m *Manager) WriteToken(w http.ResponseWriter, r *http.Request, token string) {
	if m.thirdParty {
		m.log.WarnContext(r.Context(), "refusing to write a third-party identity cookie",
			slog.String("cookie", m.cookieName))
		return
	}

	c := &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     m.path,
		Domain:   m.domain,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
	}
	switch {
	case m.lifetime == nil:
		// Browser-session cookie, no expiry attribute.
	case *m.lifetime == 0:
		c.Expires = permanentExpiry
	default:
		c.Expires = time.Now().Add(*m.lifetime)
	}
	m.writeCookie(w, c)
}

// writeCookie replaces any cookie already staged under the manager's name
// and attaches the anti-cache headers that must accompany every identity
// cookie write.
func (m *Manager) writeCookie(w http.ResponseWriter, c *http.Cookie) {
	h := w.Header()
	if staged := h.Values("Set-Cookie"); len(staged) > 0 {
		kept := make([]string, 0, len(staged))
		for _, raw := range staged {
			parsed, err := http.ParseSetCookie(raw)
			if err != nil || parsed.Name != m.cookieName {
				kept = append(kept, raw)
			}
		}
		h.Del("Set-Cookie")
		for _, raw := range kept {
			h.Add("Set-Cookie", raw)
		}
	}
	http.SetCookie(w, c)

	h.Set("Cache-Control", `no-cache="Set-Cookie,Set-Cookie2"`)
	h.Set("Pragma", "no-cache")
	h.Set("Expires", staleExpires)
}

func (m *Manager) pendingToken(w http.ResponseWriter) (string, bool) {
	for _, raw := range w.Header().Values("Set-Cookie") {
		c, err := http.ParseSetCookie(raw)
		if err != nil || c.Name != m.cookieName || c.Value == "" {
			continue
		}
		return c.Value, true
	}
	return "", false
}

// defaultCookieName yields a name unique to roughly the moment of
// construction, so two unconfigured managers on one host do not clash.
func defaultCookieName() string {
	return fmt.Sprintf("skid_%x", time.Now().Unix()-1000000000)
}

func randomSecret() (string, error) {
	var buf [32]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return "", errors.Join(ErrKeyDerivation, err)
	}
	return hex.EncodeToString(buf[:]), nil
}
