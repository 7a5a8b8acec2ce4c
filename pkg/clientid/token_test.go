package clientid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/clientid"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-."

func newManager(t *testing.T, opts ...clientid.Option) *clientid.Manager {
	t.Helper()
	base := []clientid.Option{
		clientid.WithCookieName("visitor_id"),
		clientid.WithSecret("test-secret-key-that-is-long-enough"),
	}
	m, err := clientid.New(append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func TestManager_Generate(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	t.Run("token shape", func(t *testing.T) {
		token, err := m.Generate()
		require.NoError(t, err)
		assert.Len(t, token, clientid.TokenLength)
		for i, c := range token {
			assert.Truef(t, strings.ContainsRune(tokenAlphabet, c),
				"character %q at position %d outside cookie-safe alphabet", c, i)
		}
	})

	t.Run("fresh tokens verify", func(t *testing.T) {
		token, err := m.Generate()
		require.NoError(t, err)
		assert.True(t, m.Verify(token))
	})

	t.Run("tokens are unique", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			token, err := m.Generate()
			require.NoError(t, err)
			_, dup := seen[token]
			require.False(t, dup, "duplicate token %q", token)
			seen[token] = struct{}{}
		}
	})
}

func TestManager_Verify(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	token, err := m.Generate()
	require.NoError(t, err)

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.False(t, m.Verify(""))
		assert.False(t, m.Verify(token[:clientid.TokenLength-1]))
		assert.False(t, m.Verify(token+"A"))
	})

	t.Run("rejects tampering at every position", func(t *testing.T) {
		for i := range clientid.TokenLength {
			flipped := []byte(token)
			if flipped[i] == 'A' {
				flipped[i] = 'B'
			} else {
				flipped[i] = 'A'
			}
			assert.Falsef(t, m.Verify(string(flipped)), "tampered position %d accepted", i)
		}
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := newManager(t, clientid.WithSecret("a-completely-different-secret-value"))
		foreign, err := other.Generate()
		require.NoError(t, err)
		assert.True(t, other.Verify(foreign))
		assert.False(t, m.Verify(foreign))
	})

	t.Run("rejects tokens minted for another cookie name", func(t *testing.T) {
		other := newManager(t, clientid.WithCookieName("other_cookie"))
		foreign, err := other.Generate()
		require.NoError(t, err)
		assert.True(t, other.Verify(foreign))
		assert.False(t, m.Verify(foreign))
	})
}
