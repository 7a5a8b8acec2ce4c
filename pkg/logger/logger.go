package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/sessionkit/pkg/environment"
)

// Format selects the handler encoding.
type Format string

const (
	// FormatJSON emits one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
	// FormatText emits key=value lines, for terminals.
	FormatText Format = "text"
)

type config struct {
	level       slog.Level
	format      Format
	output      io.Writer
	attrs       []slog.Attr
	handlerOpts *slog.HandlerOptions
	extractors  []ContextExtractor
}

// Option adjusts logger construction.
type Option func(*config)

// WithLevel sets the minimum level a record needs to be emitted.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the handler encoding. Unknown formats panic so a typo
// surfaces at startup instead of producing silent misformatted logs.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("unknown log format %q", f))
		}
	}
}

// WithOutput redirects records to w. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithHandlerOptions replaces the slog.HandlerOptions wholesale, for
// callers that need ReplaceAttr or source locations. It overrides WithLevel.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		if opts != nil {
			c.handlerOpts = opts
		}
	}
}

// WithAttrs pins static attributes onto every record.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithContextExtractors registers extractors that pull request-scoped
// attributes out of the context at log time. Nil extractors are dropped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// tier bundles the per-environment conventions: encoding, verbosity, and
// the service/env attributes every record should carry.
func tier(service string, level slog.Level, format Format, env environment.Environment) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		c.level = level
		c.format = format
		c.attrs = append(c.attrs,
			slog.String("service", service),
			slog.String("env", string(env)),
		)
	}
}

// WithDevelopment selects text encoding at debug level, tagged with the
// service name.
func WithDevelopment(service string) Option {
	return tier(service, slog.LevelDebug, FormatText, environment.Development)
}

// WithStaging selects JSON encoding at info level, tagged with the service name.
func WithStaging(service string) Option {
	return tier(service, slog.LevelInfo, FormatJSON, environment.Staging)
}

// WithProduction selects JSON encoding at info level, tagged with the
// service name.
func WithProduction(service string) Option {
	return tier(service, slog.LevelInfo, FormatJSON, environment.Production)
}

// WithEnvironment picks the tier preset matching env, accepting the short
// aliases "dev", "stage" and "prod". Unrecognized values fall back to
// development so a fresh checkout logs verbosely rather than not at all.
func WithEnvironment(env string, service string) Option {
	switch env {
	case string(environment.Production), "prod":
		return WithProduction(service)
	case string(environment.Staging), "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

// New builds a slog.Logger from the options. The zero-option logger writes
// JSON at info level to stdout. Context extractors run once per emitted
// record, so requests that never log pay nothing.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	hopts := cfg.handlerOpts
	if hopts == nil {
		hopts = &slog.HandlerOptions{Level: cfg.level}
	}

	var h slog.Handler
	switch cfg.format {
	case FormatText:
		h = slog.NewTextHandler(cfg.output, hopts)
	default:
		h = slog.NewJSONHandler(cfg.output, hopts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	return slog.New(newContextHandler(h, cfg.extractors))
}

// SetAsDefault installs l as both the slog default and the bridge target
// for the legacy log package.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
