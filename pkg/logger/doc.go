// Package logger builds slog loggers with the conventions shared by all
// binaries in this module: environment-driven presets, static service
// attributes, and context extractors that stamp request-scoped values
// (request ID, deployment tier) onto every record.
//
// A service typically constructs one logger at boot:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "sessiond"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			environment.LoggerExtractor(),
//		),
//	)
//	logger.SetAsDefault(log)
//
// Extractors run only when a record is actually emitted, so the handler
// adds no cost to requests that never log. The package also provides the
// attr helpers used across the module (Error, Container, Namespace, ...)
// to keep field names consistent between packages.
package logger
