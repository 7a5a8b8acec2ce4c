package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor adapts FromContext for logger.WithContextExtractors, so
// every log record emitted under a request carries its correlation ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
