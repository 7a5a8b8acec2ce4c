package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func testRegistry() *session.Registry {
	return session.NewRegistry(session.NewMemory(
		session.WithTimeout(time.Minute),
		session.WithResolution(3 * time.Second),
	))
}

func TestSession_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("pure lookup never creates", func(t *testing.T) {
		c := session.NewMemory()
		registry := session.NewRegistry(c)
		sess := session.New("visitor-1", registry)

		_, err := sess.Get(ctx, "shop.cart")
		assert.ErrorIs(t, err, session.ErrNotFound)

		stats, err := c.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.Entries, "a read miss must not mint a visitor bag")
	})

	t.Run("missing namespace on an existing bag", func(t *testing.T) {
		registry := testRegistry()
		sess := session.New("visitor-1", registry)

		_, err := sess.GetOrCreate(ctx, "known")
		require.NoError(t, err)

		_, err = sess.Get(ctx, "unknown")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("finds what get or create made", func(t *testing.T) {
		registry := testRegistry()
		sess := session.New("visitor-1", registry)

		created, err := sess.GetOrCreate(ctx, "shop.cart")
		require.NoError(t, err)
		created.Set("item", "sku-1")

		got, err := sess.Get(ctx, "shop.cart")
		require.NoError(t, err)
		assert.Same(t, created, got)
	})
}

func TestSession_Isolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("namespaces never alias", func(t *testing.T) {
		registry := testRegistry()
		sess := session.New("visitor-1", registry)

		a, err := sess.GetOrCreate(ctx, "A")
		require.NoError(t, err)
		b, err := sess.GetOrCreate(ctx, "B")
		require.NoError(t, err)

		a.Set("k", "from-a")
		b.Set("k", "from-b")

		va, _ := a.Get("k")
		vb, _ := b.Get("k")
		assert.Equal(t, "from-a", va)
		assert.Equal(t, "from-b", vb)
	})

	t.Run("visitors never share bags", func(t *testing.T) {
		registry := testRegistry()
		alice := session.New("visitor-alice", registry)
		bob := session.New("visitor-bob", registry)

		ap, err := alice.GetOrCreate(ctx, "prefs")
		require.NoError(t, err)
		ap.Set("color", "red")

		bp, err := bob.GetOrCreate(ctx, "prefs")
		require.NoError(t, err)
		_, ok := bp.Get("color")
		assert.False(t, ok)
	})
}

func TestSession_ContainerRouting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("namespace routing beats the default", func(t *testing.T) {
		def := session.NewMemory()
		special := session.NewMemory()
		registry := session.NewRegistry(def)
		registry.Register("audit", special)

		sess := session.New("visitor-1", registry)
		_, err := sess.GetOrCreate(ctx, "audit")
		require.NoError(t, err)

		defStats, err := def.Stats(ctx)
		require.NoError(t, err)
		specialStats, err := special.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, defStats.Entries)
		assert.Equal(t, 1, specialStats.Entries)
	})

	t.Run("one bag per container within a request", func(t *testing.T) {
		shared := session.NewMemory()
		registry := session.NewRegistry(shared)
		registry.Register("a", shared)
		registry.Register("b", shared)

		sess := session.New("visitor-1", registry)
		_, err := sess.GetOrCreate(ctx, "a")
		require.NoError(t, err)
		_, err = sess.GetOrCreate(ctx, "b")
		require.NoError(t, err)

		stats, err := shared.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Entries, "both namespaces live in one visitor bag")
	})

	t.Run("no default and no routing", func(t *testing.T) {
		registry := session.NewRegistry(nil)
		sess := session.New("visitor-1", registry)

		_, err := sess.GetOrCreate(ctx, "anything")
		assert.ErrorIs(t, err, session.ErrNoContainer)
	})
}

func TestSession_Guards(t *testing.T) {
	t.Parallel()
	sess := session.New("visitor-1", testRegistry())

	_, err := sess.Namespaces()
	assert.ErrorIs(t, err, session.ErrIterationUnsupported)

	_, err = sess.Contains("anything")
	assert.ErrorIs(t, err, session.ErrContainmentUnsupported)
}

func TestSession_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists modified bags across requests", func(t *testing.T) {
		b := newFakeBackend()
		clk := newFakeClock(testStart)
		durable := newDurable(t, b, clk)
		registry := session.NewRegistry(durable)

		first := session.New("visitor-1", registry)
		cart, err := first.GetOrCreate(ctx, "shop.cart")
		require.NoError(t, err)
		cart.Set("item", "sku-1")
		require.NoError(t, first.Save(ctx))

		second := session.New("visitor-1", registry)
		got, err := second.Get(ctx, "shop.cart")
		require.NoError(t, err)
		v, _ := got.Get("item")
		assert.Equal(t, "sku-1", v)
	})

	t.Run("untouched bags are not rewritten", func(t *testing.T) {
		b := newFakeBackend()
		clk := newFakeClock(testStart)
		durable := newDurable(t, b, clk)
		registry := session.NewRegistry(durable)

		sess := session.New("visitor-1", registry)
		_, err := sess.GetOrCreate(ctx, "ns")
		require.NoError(t, err)
		require.NoError(t, sess.Save(ctx))

		// Break the backend's write path: an unmodified session must not
		// attempt another store.
		b.storeErr = assert.AnError

		reread := session.New("visitor-1", registry)
		_, err = reread.Get(ctx, "ns")
		require.NoError(t, err)
		assert.NoError(t, reread.Save(ctx))
	})

	t.Run("save failures surface", func(t *testing.T) {
		b := newFakeBackend()
		clk := newFakeClock(testStart)
		durable := newDurable(t, b, clk)
		registry := session.NewRegistry(durable)

		sess := session.New("visitor-1", registry)
		p, err := sess.GetOrCreate(ctx, "ns")
		require.NoError(t, err)
		p.Set("k", "v")

		b.storeErr = assert.AnError
		assert.ErrorIs(t, sess.Save(ctx), assert.AnError)
	})
}
