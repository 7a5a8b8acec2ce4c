package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/sessionkit/pkg/clientid"
	"github.com/dmitrymomot/sessionkit/pkg/environment"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// newRouter mounts the ops endpoints and the session data API. Probes
// and metrics sit outside the session middleware so scrapers never mint
// identity cookies.
func newRouter(env environment.Environment, ids *clientid.Manager, registry *session.Registry, readiness []func(context.Context) error, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(env))

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, readiness...))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(g chi.Router) {
		g.Use(session.Middleware(ids, registry, log))

		g.Get("/whoami", handleWhoami)

		g.Route("/session/{namespace}", func(sr chi.Router) {
			sr.Use(session.RequireIdentity)
			sr.Get("/", handleGetNamespace(log))
			sr.Put("/", handlePutNamespace(log))
			sr.Delete("/{key}", handleDeleteKey(log))
		})
	})

	return r
}

// handleWhoami reports the visitor's identity, or that the request ran
// sessionless because identity policy blocked minting.
func handleWhoami(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"anonymous": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client_id": sess.ClientID()})
}

// handleGetNamespace returns the visitor's data for one namespace
// without creating anything.
func handleGetNamespace(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		ns := chi.URLParam(r, "namespace")

		pkg, err := sess.Get(r.Context(), ns)
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusNotFound, "no data for namespace")
		case err != nil:
			log.ErrorContext(r.Context(), "session read failed", logger.Namespace(ns), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "session backend unavailable")
		default:
			writeJSON(w, http.StatusOK, pkg.Snapshot())
		}
	}
}

// handlePutNamespace merges the posted JSON object into the visitor's
// namespace data, creating the bag on first write. The session
// middleware persists the result after the handler returns.
func handlePutNamespace(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		ns := chi.URLParam(r, "namespace")

		var values map[string]any
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			writeError(w, http.StatusBadRequest, "body must be a JSON object")
			return
		}

		pkg, err := sess.GetOrCreate(r.Context(), ns)
		if err != nil {
			log.ErrorContext(r.Context(), "session write failed", logger.Namespace(ns), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "session backend unavailable")
			return
		}
		for k, v := range values {
			pkg.Set(k, v)
		}
		writeJSON(w, http.StatusOK, pkg.Snapshot())
	}
}

// handleDeleteKey removes one key from the visitor's namespace data.
// Deleting from an absent bag is a no-op, matching delete semantics
// everywhere else in the system.
func handleDeleteKey(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		ns := chi.URLParam(r, "namespace")
		key := chi.URLParam(r, "key")

		pkg, err := sess.Get(r.Context(), ns)
		switch {
		case errors.Is(err, session.ErrNotFound):
			w.WriteHeader(http.StatusNoContent)
		case err != nil:
			log.ErrorContext(r.Context(), "session read failed", logger.Namespace(ns), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "session backend unavailable")
		default:
			pkg.Delete(key)
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
