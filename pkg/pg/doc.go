// Package pg provides helpers for connecting to PostgreSQL using the
// pgx/v5 driver.
//
// It wraps pgxpool with environment-based configuration, a retrying
// Connect, and a health-check helper for readiness probes. Schema
// management stays with the packages that own the tables; this package
// only hands out a pool.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
// Components that expect the standard library interface can bridge the
// pool with stdlib.OpenDBFromPool:
//
//	db := stdlib.OpenDBFromPool(pool)
//	defer db.Close()
//
// # Errors
//
// Sentinel errors wrap the underlying causes via errors.Join, so callers
// can branch with errors.Is and still unwrap the driver error.
package pg
