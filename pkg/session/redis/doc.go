// Package redis provides a redis-backed session store for use behind
// session.DurableContainer.
//
// Each visitor bag is stored as a JSON document under its own key, while
// all access stamps live in a single sorted set scored by Unix seconds.
// The split lets a stamp advance without rewriting the bag (one ZADD GT)
// and feeds the container's eviction pass with one ZRANGE. Stamp writes
// always merge as a maximum on the server, so workers racing on the same
// visitor cannot move the last access backwards.
//
// Key layout under the configurable prefix:
//
//	<prefix>:data:<token>   bag document (JSON)
//	<prefix>:stamps         sorted set of token scored by last access
//
// Keys carry no redis TTL; the container owns expiry and removes entries
// through its sweep.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error
//	}
//	store, err := sessionredis.New(client, sessionredis.WithKeyPrefix("app"))
//	if err != nil {
//	    // handle error
//	}
//	container, err := session.NewDurable(store,
//	    session.WithTimeout(time.Hour),
//	    session.WithResolution(10*time.Minute),
//	)
//
// # Errors
//
// Load reports a missing bag as session.ErrNotFound and undecodable bytes
// as session.ErrCorruptData. Driver failures are wrapped together with
// session.ErrBackend using errors.Join, so callers can match either the
// sentinel or the underlying error.
package redis
