// Package httpserver wraps net/http with the lifecycle plumbing every
// service binary repeats: environment-driven configuration, signal-aware
// startup, and graceful drain on shutdown.
//
// Run blocks until the passed context is canceled or the process receives
// SIGINT or SIGTERM, then gives in-flight requests a bounded window to
// finish before returning:
//
//	var cfg httpserver.Config
//	cfg = config.MustLoad[httpserver.Config]()
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(l *slog.Logger) { l.Info("serving") }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server exited", logger.Error(err))
//	}
//
// The package also ships HealthCheckHandler for liveness and readiness
// probes. Readiness probes run concurrently per request, so one slow
// dependency does not serialize the rest:
//
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	r.Get("/readyz", httpserver.HealthCheckHandler(log, dbPing, cachePing))
package httpserver
