// Package redis provides helpers for connecting to a Redis server.
//
// It wraps the go-redis client with a retrying Connect, environment-based
// configuration, and a health-check helper for readiness probes.
//
// # Usage
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// Register a health check in your liveness or readiness probe:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//	    // redis is not healthy
//	}
//
// # Errors
//
// Sentinel errors (e.g. ErrNotReady) wrap the underlying go-redis
// errors using errors.Join, so callers can branch with errors.Is and still
// unwrap the cause.
package redis
