package session

import (
	"context"
	"errors"
	"time"
)

// DurableContainer keeps visitor bags in a Backend that outlives the
// process, so all workers sharing the store see the same sessions. The
// container owns every TTL decision; the backend is plain storage.
//
// Access stamps are written through Backend.Touch rather than a full
// Store, and only when older than one resolution, so a busy visitor costs
// one small stamp write per resolution instead of one per request.
type DurableContainer struct {
	settings
	backend Backend
	clock   sweepClock
	stats   counters
}

var (
	_ Container     = (*DurableContainer)(nil)
	_ StatsProvider = (*DurableContainer)(nil)
)

// NewDurable creates a container over backend with a one hour timeout and
// a ten minute resolution unless configured otherwise.
func NewDurable(backend Backend, opts ...Option) (*DurableContainer, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	s := settings{
		timeout:       time.Hour,
		resolution:    10 * time.Minute,
		implicitSweep: true,
		now:           time.Now,
	}
	s.apply(opts)
	return &DurableContainer{settings: s, backend: backend}, nil
}

// NewDurableFromConfig creates a container over backend from Config.
func NewDurableFromConfig(cfg Config, backend Backend, opts ...Option) (*DurableContainer, error) {
	return NewDurable(backend, append(cfg.options(), opts...)...)
}

// Get retrieves the bag for token. Misses return ErrNotFound. When expiry
// is active the access may first trigger an implicit sweep, and a stamp
// older than one resolution is advanced both in the bag and the backend.
func (c *DurableContainer) Get(ctx context.Context, token string) (*Data, error) {
	if c.timeout == 0 {
		return c.backend.Load(ctx, token)
	}

	now := c.nowUnix()
	c.checkView()
	if err := c.maybeSweep(ctx, now); err != nil {
		return nil, err
	}

	d, err := c.backend.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.stale(d.LastAccess(), now) {
		d.Touch(now)
		if err := c.backend.Touch(ctx, token, now); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// GetOrCreate retrieves the bag for token, creating, stamping, and
// persisting an empty one on miss.
func (c *DurableContainer) GetOrCreate(ctx context.Context, token string) (*Data, error) {
	now := c.nowUnix()
	if c.timeout != 0 {
		c.checkView()
		if err := c.maybeSweep(ctx, now); err != nil {
			return nil, err
		}
	}

	d, err := c.backend.Load(ctx, token)
	if err == nil {
		if c.timeout != 0 && c.stale(d.LastAccess(), now) {
			d.Touch(now)
			if err := c.backend.Touch(ctx, token, now); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	d = NewData()
	d.Touch(now)
	if err := c.backend.Store(ctx, token, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Put persists the bag under token, stamping its access time at
// insertion. The bag's modification flag is cleared on success.
func (c *DurableContainer) Put(ctx context.Context, token string, data *Data) error {
	data.Touch(c.nowUnix())
	if err := c.backend.Store(ctx, token, data); err != nil {
		return err
	}
	data.ClearModified()
	return nil
}

// Delete removes the bag for token. Absent tokens are a silent no-op.
func (c *DurableContainer) Delete(ctx context.Context, token string) error {
	return c.backend.Delete(ctx, token)
}

// Sweep evicts every bag whose stamp is older than timeout plus
// resolution. Deletions race benignly with other workers sweeping the
// same store. A container with expiry disabled never evicts.
func (c *DurableContainer) Sweep(ctx context.Context) error {
	if c.timeout == 0 {
		return nil
	}

	now := c.nowUnix()
	stamps, err := c.backend.Stamps(ctx)
	if err != nil {
		return err
	}

	expired := expiredTokens(stamps, c.expiryCutoff(now))
	for _, token := range expired {
		if err := c.backend.Delete(ctx, token); err != nil {
			return err
		}
	}
	c.stats.record(len(expired), now)
	return nil
}

// Stats reports usage counters. The entry count is read from the backend.
func (c *DurableContainer) Stats(ctx context.Context) (Stats, error) {
	stamps, err := c.backend.Stamps(ctx)
	if err != nil {
		return Stats{}, err
	}
	return c.stats.snapshot(len(stamps)), nil
}

// checkView rolls the sweep clock back when the backend reports that the
// view it served reads from was invalidated, so a sweep recorded in that
// view is retried instead of silently skipped.
func (c *DurableContainer) checkView() {
	if r, ok := c.backend.(StaleViewReporter); ok && r.ViewInvalidated() {
		c.clock.rollback()
	}
}

func (c *DurableContainer) maybeSweep(ctx context.Context, now int64) error {
	if !c.implicitSweep {
		return nil
	}
	if !c.clock.due(now, int64(c.resolution/time.Second)) {
		return nil
	}
	if err := c.Sweep(ctx); err != nil {
		return err
	}
	c.clock.advance(now)
	return nil
}
