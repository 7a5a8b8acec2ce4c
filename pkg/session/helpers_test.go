package session_test

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// fakeClock is a controllable time source for driving expiry in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{t: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// fakeBackend is an in-memory session.Backend that counts operations and
// can report an invalidated view or injected failures.
type fakeBackend struct {
	mu      sync.Mutex
	pkgs    map[string]map[string]map[string]any
	stamps  map[string]int64
	touches map[string]int
	deleted []string
	stale   bool

	loadErr   error
	storeErr  error
	touchErr  error
	stampsErr error
}

var (
	_ session.Backend           = (*fakeBackend)(nil)
	_ session.StaleViewReporter = (*fakeBackend)(nil)
)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		pkgs:    make(map[string]map[string]map[string]any),
		stamps:  make(map[string]int64),
		touches: make(map[string]int),
	}
}

func (b *fakeBackend) Load(ctx context.Context, token string) (*session.Data, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	pkgs, ok := b.pkgs[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	copied := make(map[string]map[string]any, len(pkgs))
	for ns, values := range pkgs {
		inner := make(map[string]any, len(values))
		for k, v := range values {
			inner[k] = v
		}
		copied[ns] = inner
	}
	return session.RestoreData(copied, b.stamps[token]), nil
}

func (b *fakeBackend) Store(ctx context.Context, token string, d *session.Data) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.storeErr != nil {
		return b.storeErr
	}
	b.pkgs[token] = d.SnapshotPkgs()
	if stamp := d.LastAccess(); stamp > b.stamps[token] {
		b.stamps[token] = stamp
	}
	return nil
}

func (b *fakeBackend) Touch(ctx context.Context, token string, stamp int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.touchErr != nil {
		return b.touchErr
	}
	if _, ok := b.stamps[token]; !ok {
		return nil
	}
	b.touches[token]++
	if stamp > b.stamps[token] {
		b.stamps[token] = stamp
	}
	return nil
}

func (b *fakeBackend) Delete(ctx context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pkgs, token)
	delete(b.stamps, token)
	b.deleted = append(b.deleted, token)
	return nil
}

func (b *fakeBackend) Stamps(ctx context.Context) ([]session.Stamp, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stampsErr != nil {
		return nil, b.stampsErr
	}
	stamps := make([]session.Stamp, 0, len(b.stamps))
	for token, stamp := range b.stamps {
		stamps = append(stamps, session.Stamp{Token: token, LastAccess: stamp})
	}
	return stamps, nil
}

// ViewInvalidated reports and consumes the staleness flag, mimicking a
// store whose view is refreshed by the access that notices the rollback.
func (b *fakeBackend) ViewInvalidated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	stale := b.stale
	b.stale = false
	return stale
}

func (b *fakeBackend) markStale() {
	b.mu.Lock()
	b.stale = true
	b.mu.Unlock()
}

func (b *fakeBackend) touchCount(token string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.touches[token]
}

func (b *fakeBackend) stamp(token string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stamps[token]
}

func (b *fakeBackend) has(token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pkgs[token]
	return ok
}
