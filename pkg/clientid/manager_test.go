package clientid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/clientid"
)

func identityCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestManager_ClientID(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	t.Run("mints for a new visitor", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		id, err := m.ClientID(w, r)
		require.NoError(t, err)
		assert.Len(t, id, clientid.TokenLength)

		c := identityCookie(t, w, "visitor_id")
		require.NotNil(t, c)
		assert.Equal(t, id, c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Expires.IsZero(), "default lifetime must issue a browser-session cookie")
	})

	t.Run("sets anti-cache headers with the cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		_, err := m.ClientID(w, r)
		require.NoError(t, err)

		h := w.Header()
		assert.Equal(t, `no-cache="Set-Cookie,Set-Cookie2"`, h.Get("Cache-Control"))
		assert.Equal(t, "no-cache", h.Get("Pragma"))
		assert.Equal(t, "Mon, 26 Jul 1997 05:00:00 GMT", h.Get("Expires"))
	})

	t.Run("returns the same identity across requests", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		r1 := httptest.NewRequest("GET", "/", nil)
		id1, err := m.ClientID(w1, r1)
		require.NoError(t, err)

		r2 := httptest.NewRequest("GET", "/", nil)
		for _, c := range w1.Result().Cookies() {
			r2.AddCookie(c)
		}
		w2 := httptest.NewRecorder()

		id2, err := m.ClientID(w2, r2)
		require.NoError(t, err)
		assert.Equal(t, id1, id2)
		assert.Nil(t, identityCookie(t, w2, "visitor_id"),
			"session-lifetime cookies are not rewritten for known visitors")
	})

	t.Run("identity is stable within one request", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		id1, err := m.ClientID(w, r)
		require.NoError(t, err)
		id2, err := m.ClientID(w, r)
		require.NoError(t, err)

		assert.Equal(t, id1, id2, "second call must find the staged cookie")
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("mints a replacement for a tampered cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "visitor_id", Value: "not-a-valid-token"})

		id, err := m.ClientID(w, r)
		require.NoError(t, err)
		assert.True(t, m.Verify(id))

		c := identityCookie(t, w, "visitor_id")
		require.NotNil(t, c)
		assert.Equal(t, id, c.Value)
	})
}

func TestManager_ThirdParty(t *testing.T) {
	t.Parallel()
	m := newManager(t, clientid.WithThirdParty(true))

	t.Run("requires an upstream cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		_, err := m.ClientID(w, r)
		assert.ErrorIs(t, err, clientid.ErrMissingClientID)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("trusts the upstream value verbatim", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "visitor_id", Value: "opaque-upstream-value"})

		id, err := m.ClientID(w, r)
		require.NoError(t, err)
		assert.Equal(t, "opaque-upstream-value", id)
	})

	t.Run("never writes a cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		m.WriteToken(w, r, "anything")
		assert.Empty(t, w.Result().Cookies())
		assert.Empty(t, w.Header().Get("Cache-Control"))
	})
}

func TestManager_PostOnly(t *testing.T) {
	t.Parallel()
	m := newManager(t, clientid.WithPostOnly(true))

	t.Run("refuses to mint on GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		_, err := m.ClientID(w, r)
		assert.ErrorIs(t, err, clientid.ErrMissingClientID)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("mints on POST", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/", nil)

		id, err := m.ClientID(w, r)
		require.NoError(t, err)
		assert.True(t, m.Verify(id))
	})

	t.Run("honors an existing identity on any method", func(t *testing.T) {
		token, err := m.Generate()
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "visitor_id", Value: token})

		id, err := m.ClientID(w, r)
		require.NoError(t, err)
		assert.Equal(t, token, id)
	})
}

func TestManager_CookieLifetime(t *testing.T) {
	t.Parallel()

	t.Run("permanent lifetime pins expiry far in the future", func(t *testing.T) {
		m := newManager(t, clientid.WithPermanentLifetime())
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		_, err := m.ClientID(w, r)
		require.NoError(t, err)

		c := identityCookie(t, w, "visitor_id")
		require.NotNil(t, c)
		assert.Equal(t, 2038, c.Expires.Year())
	})

	t.Run("finite lifetime rewrites the cookie on every request", func(t *testing.T) {
		m := newManager(t, clientid.WithLifetime(time.Hour))
		token, err := m.Generate()
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "visitor_id", Value: token})

		id, err := m.ClientID(w, r)
		require.NoError(t, err)
		assert.Equal(t, token, id)

		c := identityCookie(t, w, "visitor_id")
		require.NotNil(t, c, "known visitors still get a refreshed cookie")
		assert.Equal(t, token, c.Value)
		assert.WithinDuration(t, time.Now().Add(time.Hour), c.Expires, time.Minute)
	})

	t.Run("rewriting replaces the staged cookie instead of stacking", func(t *testing.T) {
		m := newManager(t, clientid.WithLifetime(time.Hour))
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		id1, err := m.ClientID(w, r)
		require.NoError(t, err)
		id2, err := m.ClientID(w, r)
		require.NoError(t, err)

		assert.Equal(t, id1, id2)
		assert.Len(t, w.Result().Cookies(), 1)
	})
}

func TestManager_ReadToken(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	t.Run("prefers the staged response cookie", func(t *testing.T) {
		requestToken, err := m.Generate()
		require.NoError(t, err)
		stagedToken, err := m.Generate()
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "visitor_id", Value: requestToken})
		m.WriteToken(w, r, stagedToken)

		got, ok := m.ReadToken(w, r)
		require.True(t, ok)
		assert.Equal(t, stagedToken, got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		_, ok := m.ReadToken(w, r)
		assert.False(t, ok)
	})

	t.Run("writes are not validated, reads are", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)

		m.WriteToken(w, r, "garbage-value")
		c := identityCookie(t, w, "visitor_id")
		require.NotNil(t, c, "writers pass values through untouched")
		assert.Equal(t, "garbage-value", c.Value)

		_, ok := m.ReadToken(w, r)
		assert.False(t, ok, "readers filter invalid values")
	})
}
