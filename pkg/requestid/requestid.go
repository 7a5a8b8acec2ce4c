package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the canonical correlation-ID header.
const Header = "X-Request-ID"

// maxLen caps client-supplied IDs so a hostile header cannot bloat logs.
const maxLen = 128

type ctxKey struct{}

// Middleware tags every request with a correlation ID. A well-formed ID
// supplied by the client in X-Request-ID is kept, anything else is replaced
// with a fresh UUID. The ID travels in the request context and is echoed in
// the response header so callers can quote it when reporting problems.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !wellFormed(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// wellFormed accepts non-empty IDs up to maxLen made of ASCII letters,
// digits, '-' and '_'. Everything else gets regenerated rather than
// propagated into logs verbatim.
func wellFormed(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// WithContext stores the correlation ID in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation ID stored by Middleware, or "" when
// the request never went through it.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
