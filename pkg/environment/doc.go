// Package environment propagates the deployment tier (development, staging,
// production) through request contexts and structured logs.
//
// The tier is set once at the router level and queried anywhere below it:
//
//	r := chi.NewRouter()
//	r.Use(environment.Middleware(environment.Production))
//
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		if environment.IsProduction(r.Context()) {
//			// ...
//		}
//	})
//
// The predicates accept the common short aliases "dev", "stage" and "prod"
// alongside the canonical constants. LoggerExtractor plugs the tier into the
// logger package's context extractors.
package environment
