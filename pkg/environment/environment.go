package environment

import "context"

// Environment names the deployment tier an instance runs in. It is a plain
// string so config values flow in without conversion ceremony.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

type ctxKey struct{}

// WithContext stores env in ctx for downstream code to query.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, ctxKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when none was set.
func FromContext(ctx context.Context) Environment {
	env, _ := ctx.Value(ctxKey{}).(Environment)
	return env
}

// IsDevelopment reports whether ctx carries the development tier. The short
// alias "dev" is accepted since config files commonly use it.
func IsDevelopment(ctx context.Context) bool {
	return matches(ctx, Development, "dev")
}

// IsStaging reports whether ctx carries the staging tier ("stage" accepted).
func IsStaging(ctx context.Context) bool {
	return matches(ctx, Staging, "stage")
}

// IsProduction reports whether ctx carries the production tier ("prod" accepted).
func IsProduction(ctx context.Context) bool {
	return matches(ctx, Production, "prod")
}

func matches(ctx context.Context, canonical Environment, alias Environment) bool {
	env := FromContext(ctx)
	return env == canonical || env == alias
}
