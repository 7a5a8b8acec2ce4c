package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// sweepClock schedules implicit sweeps. It remembers the value it held
// before the most recent advance so a container can roll back after its
// backend reports an invalidated view: the next access then retries the
// sweep at the correct cadence instead of silently skipping it.
type sweepClock struct {
	mu        sync.Mutex
	last      int64
	prev      int64
	prevValid bool
}

// due reports whether an implicit sweep should run at now.
func (c *sweepClock) due(now, resolution int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last+resolution < now
}

// advance records a completed sweep, keeping the previous value for a
// possible rollback.
func (c *sweepClock) advance(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prev, c.prevValid = c.last, true
	c.last = now
}

// rollback reverts to the pre-sweep value. The saved value is consumed,
// so repeated invalidation reports without an intervening sweep regress
// the clock at most one step; a retry storm cannot wind it back forever.
func (c *sweepClock) rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prevValid {
		c.last = c.prev
		c.prevValid = false
	}
}

// counters aggregates sweep activity for Stats.
type counters struct {
	sweeps    atomic.Int64
	evictions atomic.Int64
	lastSweep atomic.Int64
}

func (c *counters) record(evicted int, at int64) {
	c.sweeps.Add(1)
	c.evictions.Add(int64(evicted))
	c.lastSweep.Store(at)
}

func (c *counters) snapshot(entries int) Stats {
	s := Stats{
		Entries:   entries,
		Sweeps:    c.sweeps.Load(),
		Evictions: c.evictions.Load(),
	}
	if at := c.lastSweep.Load(); at > 0 {
		s.LastSweep = time.Unix(at, 0)
	}
	return s
}
