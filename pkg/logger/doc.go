// Package logger builds *slog.Logger values with functional options and
// injects request-scoped attributes from context.Context.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "numstr"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	log.InfoContext(ctx, "document validated", logger.Violations(0))
//
// New wraps the JSON or text handler in LogHandlerDecorator, which runs every
// registered ContextExtractor on each record. Attribute helpers in this
// package keep key names consistent across the service.
package logger
