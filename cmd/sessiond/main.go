package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/clientid"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/environment"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// appConfig holds the daemon's own settings; everything else (HTTP
// server, identity cookies, backend connections) loads through the
// owning package's Config struct.
type appConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	TopologyPath    string        `env:"SESSION_TOPOLOGY" envDefault:"topology.yaml"`
	MongoDatabase   string        `env:"MONGODB_DATABASE" envDefault:"sessionkit"`
	MetricsInterval time.Duration `env:"METRICS_REFRESH_INTERVAL" envDefault:"15s"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, "sessiond"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("sessiond exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var cidCfg clientid.Config
	if err := config.Load(&cidCfg); err != nil {
		return err
	}
	ids, err := clientid.NewFromConfig(cidCfg, clientid.WithLogger(log))
	if err != nil {
		return fmt.Errorf("identity manager: %w", err)
	}

	topo, err := session.LoadTopology(cfg.TopologyPath)
	if err != nil {
		return fmt.Errorf("topology %s: %w", cfg.TopologyPath, err)
	}

	backends, err := connectBackends(ctx, topo, cfg, log)
	if err != nil {
		return err
	}

	containers, err := topo.Build(backends.factories)
	if err != nil {
		return fmt.Errorf("build containers: %w", err)
	}
	registry := topo.Assemble(containers)
	log.InfoContext(ctx, "session topology ready",
		slog.Int("containers", len(containers)),
		slog.Any("namespaces", registry.Namespaces()),
		slog.String("default", topo.Default))

	var sessCfg session.Config
	if err := config.Load(&sessCfg); err != nil {
		return err
	}
	if sessCfg.SweepInterval > 0 {
		for name, c := range containers {
			go session.RunSweeper(ctx, c, sessCfg.SweepInterval, log.With(logger.Container(name)))
		}
	}

	go refreshMetrics(ctx, containers, cfg.MetricsInterval, log)

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("sessiond listening", slog.String("addr", srvCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("sessiond stopped")
		}),
	)

	router := newRouter(environment.Environment(cfg.Env), ids, registry, backends.readiness, log)
	return srv.Run(ctx, router)
}
