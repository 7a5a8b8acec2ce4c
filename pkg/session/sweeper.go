package session

import (
	"context"
	"log/slog"
	"time"
)

// RunSweeper sweeps c every interval until ctx is canceled. Implicit
// sweeps only run on access, so a container serving a quiet workload can
// hold expired bags indefinitely; a background sweeper covers that gap.
// Run one per container in its own goroutine. A nil log discards.
func RunSweeper(ctx context.Context, c Container, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Sweep(ctx); err != nil {
				log.ErrorContext(ctx, "session sweep failed", slog.Any("error", err))
			}
		}
	}
}
