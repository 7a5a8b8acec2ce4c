package environment

import (
	"context"
	"log/slog"
)

// LoggerExtractor adapts FromContext for logger.WithContextExtractors, so
// records emitted under a request carry the deployment tier.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		if env == "" {
			return slog.Attr{}, false
		}
		return slog.String("env", string(env)), true
	}
}
