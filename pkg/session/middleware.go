package session

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/clientid"
)

// Middleware resolves the visitor identity, puts a Session in the
// request context, and persists modified bags after the handler returns.
// When identity policy blocks minting, or resolution fails, the request
// proceeds without a session and handlers see FromContext ok == false.
// A nil log discards.
func Middleware(ids *clientid.Manager, registry *Registry, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := FromRequest(w, r, ids, registry)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			if err := sess.Save(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "failed to persist session data",
					slog.String("client_id", sess.ClientID()),
					slog.Any("error", err))
			}
		})
	}
}

// RequireIdentity rejects requests that reached the handler without a
// session, which happens when identity policy blocked minting. Place it
// after Middleware on routes that cannot proceed anonymously.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "Identity required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
