package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// New connects to a MongoDB server. It retries up to cfg.RetryAttempts
// times with cfg.RetryInterval between attempts and returns ErrNotReady
// when none succeeds.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}

	opts := options.Client().ApplyURI(cfg.ConnectionURL)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetMaxPoolSize(cfg.MaxPoolSize)
	opts.SetMinPoolSize(cfg.MinPoolSize)
	opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	opts.SetRetryWrites(cfg.RetryWrites)
	opts.SetRetryReads(cfg.RetryReads)

	for range cfg.RetryAttempts {
		client, err := mongo.Connect(opts)
		if err == nil {
			// Ping verifies the server is actually reachable, not just
			// that the topology was set up.
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrNotReady
}

// NewWithDatabase connects like New and returns a handle for the named
// database.
func NewWithDatabase(ctx context.Context, cfg Config, database string) (*mongo.Database, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Database(database), nil
}
