// Package requestid assigns every HTTP request a correlation ID and makes
// it available to handlers and structured logs.
//
// Clients may bring their own ID in the X-Request-ID header; malformed or
// missing values are replaced with a fresh UUID so downstream code can rely
// on the ID always being present and log-safe. The middleware echoes the
// final ID back in the response:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		id := requestid.FromContext(r.Context())
//		// ...
//	})
//
// Combine with the logger package to stamp the ID onto every record:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
