package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryContainer keeps visitor bags in process memory. Entries are not
// shared across processes; deployments needing shared state must use a
// DurableContainer. Each instance owns its table outright: storage opens
// lazily on first use and is released by Close.
//
// Returned bags are live references, never copies, so two lookups of the
// same token observe each other's writes. Bags synchronize internally.
type MemoryContainer struct {
	settings
	id    string
	clock sweepClock
	stats counters

	mu     sync.RWMutex
	bags   map[string]*Data
	closed bool
}

var (
	_ Container     = (*MemoryContainer)(nil)
	_ StatsProvider = (*MemoryContainer)(nil)
)

// NewMemory creates an in-memory container with a one hour timeout and a
// five minute resolution unless configured otherwise.
func NewMemory(opts ...Option) *MemoryContainer {
	s := settings{
		timeout:       time.Hour,
		resolution:    5 * time.Minute,
		implicitSweep: true,
		now:           time.Now,
	}
	s.apply(opts)
	return &MemoryContainer{settings: s, id: uuid.NewString()}
}

// NewMemoryFromConfig creates an in-memory container from Config.
func NewMemoryFromConfig(cfg Config, opts ...Option) *MemoryContainer {
	return NewMemory(append(cfg.options(), opts...)...)
}

// ID returns the unique identity of this container instance, useful as a
// metrics or logging label.
func (c *MemoryContainer) ID() string {
	return c.id
}

// Get retrieves the bag for token. Misses return ErrNotFound. When expiry
// is active the access may first trigger an implicit sweep, and the bag's
// stamp is refreshed if older than one resolution.
func (c *MemoryContainer) Get(ctx context.Context, token string) (*Data, error) {
	if c.timeout == 0 {
		return c.lookup(token)
	}

	now := c.nowUnix()
	c.maybeSweep(ctx, now)

	d, err := c.lookup(token)
	if err != nil {
		return nil, err
	}
	if c.stale(d.LastAccess(), now) {
		d.Touch(now)
	}
	return d, nil
}

// GetOrCreate retrieves the bag for token, creating and stamping an empty
// one on miss.
func (c *MemoryContainer) GetOrCreate(ctx context.Context, token string) (*Data, error) {
	now := c.nowUnix()
	if c.timeout != 0 {
		c.maybeSweep(ctx, now)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrContainerClosed
	}
	c.open()

	if d, ok := c.bags[token]; ok {
		if c.timeout != 0 && c.stale(d.LastAccess(), now) {
			d.Touch(now)
		}
		return d, nil
	}

	d := NewData()
	d.Touch(now)
	c.bags[token] = d
	return d, nil
}

// Put stores the bag under token, stamping its access time at insertion.
func (c *MemoryContainer) Put(ctx context.Context, token string, data *Data) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContainerClosed
	}
	c.open()

	data.Touch(c.nowUnix())
	c.bags[token] = data
	data.ClearModified()
	return nil
}

// Delete removes the bag for token. Absent tokens are a silent no-op.
func (c *MemoryContainer) Delete(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContainerClosed
	}
	delete(c.bags, token)
	return nil
}

// Sweep evicts every bag whose stamp is older than timeout plus
// resolution, then compacts the table if anything went. A container with
// expiry disabled never evicts.
func (c *MemoryContainer) Sweep(ctx context.Context) error {
	if c.timeout == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContainerClosed
	}

	now := c.nowUnix()
	stamps := make([]Stamp, 0, len(c.bags))
	for token, d := range c.bags {
		stamps = append(stamps, Stamp{Token: token, LastAccess: d.LastAccess()})
	}

	expired := expiredTokens(stamps, c.expiryCutoff(now))
	for _, token := range expired {
		delete(c.bags, token)
	}
	if len(expired) > 0 {
		c.compact()
	}
	c.stats.record(len(expired), now)
	return nil
}

// Stats reports usage counters for this container.
func (c *MemoryContainer) Stats(ctx context.Context) (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return Stats{}, ErrContainerClosed
	}
	return c.stats.snapshot(len(c.bags)), nil
}

// Close releases the table. Further operations return ErrContainerClosed.
func (c *MemoryContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.bags = nil
	return nil
}

func (c *MemoryContainer) lookup(token string) (*Data, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrContainerClosed
	}
	d, ok := c.bags[token]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (c *MemoryContainer) maybeSweep(ctx context.Context, now int64) {
	if !c.implicitSweep {
		return
	}
	if !c.clock.due(now, int64(c.resolution/time.Second)) {
		return
	}
	if err := c.Sweep(ctx); err != nil {
		return
	}
	c.clock.advance(now)
}

// open lazily allocates the table. Caller holds the write lock.
func (c *MemoryContainer) open() {
	if c.bags == nil {
		c.bags = make(map[string]*Data)
	}
}

// compact rebuilds the table after evictions so the map releases bucket
// memory held for entries that are gone. Caller holds the write lock.
func (c *MemoryContainer) compact() {
	fresh := make(map[string]*Data, len(c.bags))
	for token, d := range c.bags {
		fresh[token] = d
	}
	c.bags = fresh
}
