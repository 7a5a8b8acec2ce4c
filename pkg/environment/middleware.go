package environment

import "net/http"

// Middleware stamps env onto every request context, so handlers and the
// code they call can branch on the deployment tier without threading it
// through as a parameter.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}
