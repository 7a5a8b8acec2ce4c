// Package mongo provides helpers for connecting to MongoDB with the
// official driver.
//
// It wraps the v2 driver with environment-based configuration, retrying
// connects, and a health-check helper for readiness probes. Pool defaults
// suit typical service workloads without manual tuning.
//
// # Usage
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "sessions")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Client().Disconnect(ctx)
//
//	health := mongo.Healthcheck(db.Client())
//	if err := health(ctx); err != nil {
//	    // mongo is not healthy
//	}
//
// # Errors
//
// Connection failures wrap ErrNotReady via errors.Join for
// errors.Is checks.
package mongo
