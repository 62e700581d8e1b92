// Package logging builds the slog loggers used by the API server and the CLI
// and carries them through request contexts.
//
// The HTTP middleware attaches a request-scoped logger tagged with the
// request ID; downstream code retrieves it with FromContext, which falls back
// to slog.Default when no logger was attached.
//
//	logger := logging.FromContext(ctx)
//	logger.Debug("counting", slog.String("operation", op))
//
// LOG_LEVEL=debug lowers the level of NewLogger and NewTextLogger to debug.
package logging
