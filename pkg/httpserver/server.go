package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 15 * time.Second
)

// Server runs an HTTP listener with graceful drain on context cancellation
// or SIGINT/SIGTERM. The zero value is not usable; construct with New or
// NewFromConfig.
type Server struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	log             *slog.Logger
	onStart         []func(*slog.Logger)
	onStop          []func(*slog.Logger)
	running         atomic.Bool
}

// New builds a Server with sane defaults, then applies opts in order.
func New(opts ...Option) *Server {
	s := &Server{
		addr:            defaultAddr,
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		idleTimeout:     defaultIdleTimeout,
		shutdownTimeout: defaultShutdownTimeout,
		log:             slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler until ctx is canceled or the process receives SIGINT
// or SIGTERM, then drains in-flight requests for at most the configured
// shutdown timeout. It blocks for the lifetime of the server and returns
// nil after a clean drain.
//
// A Server runs at most once at a time; a concurrent second call returns
// ErrAlreadyRunning.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	if handler == nil {
		handler = http.NotFoundHandler()
	}
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	s.log.InfoContext(ctx, "http server listening", slog.String("addr", s.addr))
	for _, hook := range s.onStart {
		hook(s.log)
	}

	select {
	case err := <-serveErr:
		// Listener died on its own; there is nothing left to drain.
		return errors.Join(ErrServeFailed, err)
	case <-ctx.Done():
	}

	s.log.Info("http server draining", slog.String("addr", s.addr))
	drainCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(drainCtx)
	if closed := <-serveErr; closed != nil && !errors.Is(closed, http.ErrServerClosed) {
		err = errors.Join(err, closed)
	}
	for _, hook := range s.onStop {
		hook(s.log)
	}
	if err != nil {
		return errors.Join(ErrShutdownFailed, err)
	}
	return nil
}
