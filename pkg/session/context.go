package session

import "context"

type ctxKey struct{}

// WithSession stores sess in ctx. The middleware does this for every
// request that carries an identity.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the request's session. ok is false when the request
// ran sessionless, either because the middleware is not mounted or because
// identity policy blocked minting a client ID.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok
}

// MustFromContext returns the request's session and panics without one.
// Only call it below RequireIdentity, which guarantees the session exists.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}
