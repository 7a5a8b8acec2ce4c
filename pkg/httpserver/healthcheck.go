package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/async"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// HealthCheckHandler returns a probe endpoint. With no probes it is a pure
// liveness check and always answers 200 "alive". With probes it runs all of
// them concurrently under the request context on every call: 200 "ready"
// when every probe passes, 503 "degraded" otherwise, with the combined
// failures logged.
func HealthCheckHandler(log *slog.Logger, probes ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			respond(w, http.StatusOK, "alive")
			return
		}
		ctx := r.Context()
		futures := make([]*async.Future[struct{}], len(probes))
		for i, probe := range probes {
			futures[i] = async.Async(ctx, probe, func(ctx context.Context, p func(context.Context) error) (struct{}, error) {
				return struct{}{}, p(ctx)
			})
		}
		if _, err := async.All(futures...); err != nil {
			log.ErrorContext(ctx, "readiness probe failed", logger.Error(err))
			respond(w, http.StatusServiceUnavailable, "degraded")
			return
		}
		respond(w, http.StatusOK, "ready")
	}
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
