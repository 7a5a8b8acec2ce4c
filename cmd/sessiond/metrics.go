package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

var (
	containerEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sessiond_container_entries",
		Help: "Visitor bags currently held, per container.",
	}, []string{"container"})

	containerSweeps = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sessiond_container_sweeps",
		Help: "Eviction passes completed, per container.",
	}, []string{"container"})

	containerEvictions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sessiond_container_evictions",
		Help: "Bags removed by sweeping, per container.",
	}, []string{"container"})

	containerLastSweep = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sessiond_container_last_sweep_timestamp_seconds",
		Help: "Unix time of the latest completed sweep, per container.",
	}, []string{"container"})
)

func init() {
	prometheus.MustRegister(
		containerEntries,
		containerSweeps,
		containerEvictions,
		containerLastSweep,
	)
}

// refreshMetrics republishes container stats as gauges every interval
// until ctx is canceled. Containers that cannot report stats are
// skipped.
func refreshMetrics(ctx context.Context, containers map[string]session.Container, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}

	providers := make(map[string]session.StatsProvider, len(containers))
	for name, c := range containers {
		if p, ok := c.(session.StatsProvider); ok {
			providers[name] = p
		}
	}
	if len(providers) == 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collectStats(ctx, providers, log)
		}
	}
}

func collectStats(ctx context.Context, providers map[string]session.StatsProvider, log *slog.Logger) {
	for name, p := range providers {
		stats, err := p.Stats(ctx)
		if err != nil {
			log.ErrorContext(ctx, "container stats unavailable", logger.Container(name), logger.Error(err))
			continue
		}
		containerEntries.WithLabelValues(name).Set(float64(stats.Entries))
		containerSweeps.WithLabelValues(name).Set(float64(stats.Sweeps))
		containerEvictions.WithLabelValues(name).Set(float64(stats.Evictions))
		if !stats.LastSweep.IsZero() {
			containerLastSweep.WithLabelValues(name).Set(float64(stats.LastSweep.Unix()))
		}
	}
}
