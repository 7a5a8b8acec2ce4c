package session

import (
	"context"
	"time"
)

// Container is a TTL-bound mapping from identity token to visitor bag.
// Entries are destroyed only by sweeping, never by the read path itself.
type Container interface {
	// Get retrieves the bag for token without creating it.
	// Returns ErrNotFound when the visitor has no bag.
	Get(ctx context.Context, token string) (*Data, error)

	// GetOrCreate retrieves the bag for token, creating and stamping an
	// empty one on miss.
	GetOrCreate(ctx context.Context, token string) (*Data, error)

	// Put stores the bag under token and stamps its access time.
	Put(ctx context.Context, token string, data *Data) error

	// Delete removes the bag for token. Deleting an absent token is a
	// silent no-op, since two workers may race to evict the same entry.
	Delete(ctx context.Context, token string) error

	// Sweep runs an explicit eviction pass over all entries.
	Sweep(ctx context.Context) error
}

// Stats describes a container's usage counters.
type Stats struct {
	// Entries is the number of bags currently held.
	Entries int
	// Sweeps counts completed eviction passes.
	Sweeps int64
	// Evictions counts bags removed by sweeping.
	Evictions int64
	// LastSweep is when the latest pass finished; zero if none ran.
	LastSweep time.Time
}

// StatsProvider is an optional interface for containers that can report
// usage counters, typically for metrics export.
type StatsProvider interface {
	Stats(ctx context.Context) (Stats, error)
}
