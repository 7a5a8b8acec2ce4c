package session

import "context"

// Backend is the durable store behind a DurableContainer. Implementations
// exist for redis, postgres, and mongo; the container supplies all TTL
// logic, so a backend is plain keyed storage plus a stamp column.
type Backend interface {
	// Load retrieves the bag for token. Returns ErrNotFound when absent.
	Load(ctx context.Context, token string) (*Data, error)

	// Store writes the full bag and its access stamp. The stamp must be
	// merged as a maximum with any stamp already stored, never regressed.
	Store(ctx context.Context, token string, data *Data) error

	// Touch advances only the stored access stamp to max(current, stamp).
	// Touching an absent token is a no-op.
	Touch(ctx context.Context, token string, stamp int64) error

	// Delete removes the bag for token. Deleting an absent token is a
	// silent no-op.
	Delete(ctx context.Context, token string) error

	// Stamps lists every stored token with its access stamp, feeding the
	// container's eviction pass.
	Stamps(ctx context.Context) ([]Stamp, error)
}

// Stamp pairs a token with its last access time in Unix seconds.
type Stamp struct {
	Token      string
	LastAccess int64
}

// StaleViewReporter is an optional Backend interface for transactional
// stores able to signal that reads since the last check may have come
// from an invalidated view (for example a rolled-back transaction). The
// container reacts by rolling its sweep clock back so the cadence is not
// silently skipped.
type StaleViewReporter interface {
	ViewInvalidated() bool
}
