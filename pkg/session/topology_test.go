package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const topologyDoc = `
containers:
  - name: volatile
    backend: memory
    timeout: 30m
  - name: durable
    backend: fake
    timeout: 12h
    resolution: 30m
bindings:
  shop.cart: durable
  shop.orders: durable
default: volatile
`

func fakeFactories(backend session.Backend) map[string]session.BackendFactory {
	return map[string]session.BackendFactory{
		"fake": func(session.ContainerSpec) (session.Backend, error) {
			return backend, nil
		},
	}
}

func TestParseTopology(t *testing.T) {
	t.Run("parses containers and durations", func(t *testing.T) {
		topo, err := session.ParseTopology([]byte(topologyDoc))
		require.NoError(t, err)

		require.Len(t, topo.Containers, 2)
		assert.Equal(t, "volatile", topo.Containers[0].Name)
		assert.Equal(t, "memory", topo.Containers[0].Backend)
		require.NotNil(t, topo.Containers[0].Timeout)
		assert.Equal(t, 30*time.Minute, topo.Containers[0].Timeout.Std())
		assert.Nil(t, topo.Containers[0].Resolution, "omitted settings stay nil")

		require.NotNil(t, topo.Containers[1].Resolution)
		assert.Equal(t, 12*time.Hour, topo.Containers[1].Timeout.Std())
		assert.Equal(t, "volatile", topo.Default)
		assert.Equal(t, "durable", topo.Bindings["shop.cart"])
	})

	t.Run("expands environment references", func(t *testing.T) {
		t.Setenv("SESSION_DEFAULT", "volatile")

		doc := `
containers:
  - name: volatile
    backend: memory
default: ${SESSION_DEFAULT}
`
		topo, err := session.ParseTopology([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, "volatile", topo.Default)
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		doc := `
containers:
  - name: volatile
    backend: memory
    timeout: soon
default: volatile
`
		_, err := session.ParseTopology([]byte(doc))
		require.ErrorIs(t, err, session.ErrInvalidTopology)
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name string
			doc  string
		}{
			{"no containers", "default: x\n"},
			{"empty container name", "containers:\n  - backend: memory\ndefault: x\n"},
			{"missing backend", "containers:\n  - name: a\ndefault: a\n"},
			{"duplicate container", "containers:\n  - name: a\n    backend: memory\n  - name: a\n    backend: memory\ndefault: a\n"},
			{"missing default", "containers:\n  - name: a\n    backend: memory\n"},
			{"unknown default", "containers:\n  - name: a\n    backend: memory\ndefault: b\n"},
			{"binding to unknown container", "containers:\n  - name: a\n    backend: memory\nbindings:\n  ns: b\ndefault: a\n"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := session.ParseTopology([]byte(tc.doc))
				assert.ErrorIs(t, err, session.ErrInvalidTopology)
			})
		}
	})
}

func TestLoadTopology(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topology.yaml")
		require.NoError(t, os.WriteFile(path, []byte(topologyDoc), 0o600))

		topo, err := session.LoadTopology(path)
		require.NoError(t, err)
		assert.Equal(t, "volatile", topo.Default)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := session.LoadTopology(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, session.ErrInvalidTopology)
	})
}

func TestBuildRegistry(t *testing.T) {
	t.Run("wires bindings and default", func(t *testing.T) {
		topo, err := session.ParseTopology([]byte(topologyDoc))
		require.NoError(t, err)

		registry, err := topo.BuildRegistry(fakeFactories(newFakeBackend()))
		require.NoError(t, err)

		cart, err := registry.Resolve("shop.cart")
		require.NoError(t, err)
		orders, err := registry.Resolve("shop.orders")
		require.NoError(t, err)
		assert.Same(t, cart, orders, "both namespaces bind to the durable container")

		fallback, err := registry.Resolve("anything.else")
		require.NoError(t, err)
		assert.NotSame(t, cart, fallback)
		assert.IsType(t, (*session.MemoryContainer)(nil), fallback)

		assert.Len(t, registry.Containers(), 2)
	})

	t.Run("build keeps the name mapping", func(t *testing.T) {
		topo, err := session.ParseTopology([]byte(topologyDoc))
		require.NoError(t, err)

		containers, err := topo.Build(fakeFactories(newFakeBackend()))
		require.NoError(t, err)
		require.Len(t, containers, 2)
		require.Contains(t, containers, "volatile")
		require.Contains(t, containers, "durable")

		registry := topo.Assemble(containers)
		cart, err := registry.Resolve("shop.cart")
		require.NoError(t, err)
		assert.Same(t, containers["durable"], cart)

		fallback, err := registry.Resolve("unbound.ns")
		require.NoError(t, err)
		assert.Same(t, containers["volatile"], fallback)
	})

	t.Run("factory receives the container spec", func(t *testing.T) {
		topo, err := session.ParseTopology([]byte(topologyDoc))
		require.NoError(t, err)

		var got session.ContainerSpec
		_, err = topo.BuildRegistry(map[string]session.BackendFactory{
			"fake": func(spec session.ContainerSpec) (session.Backend, error) {
				got = spec
				return newFakeBackend(), nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "durable", got.Name)
		assert.Equal(t, "fake", got.Backend)
	})

	t.Run("missing factory", func(t *testing.T) {
		topo, err := session.ParseTopology([]byte(topologyDoc))
		require.NoError(t, err)

		_, err = topo.BuildRegistry(nil)
		assert.ErrorIs(t, err, session.ErrInvalidTopology)
	})

	t.Run("factory errors propagate", func(t *testing.T) {
		topo, err := session.ParseTopology([]byte(topologyDoc))
		require.NoError(t, err)

		boom := errors.New("no store")
		_, err = topo.BuildRegistry(map[string]session.BackendFactory{
			"fake": func(session.ContainerSpec) (session.Backend, error) {
				return nil, boom
			},
		})
		assert.ErrorIs(t, err, boom)
	})
}
