// Package logger provides structured logging built on log/slog with
// context-based attribute injection.
//
// The package provides:
//   - Context extractors that inject request-scoped values (e.g., request IDs)
//     into every log entry
//   - A decorator that wraps any slog.Handler to add extraction behavior
//   - A no-op logger for use as a safe default when logging is not configured
//
// # Basic Usage
//
// Create a logger with context extractors:
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if reqID, ok := ctx.Value(requestIDKey{}).(string); ok && reqID != "" {
//			return slog.String("request_id", reqID), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(requestIDExtractor)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// Extractors are called on every log call, ensuring fresh values for
// request-scoped data. Return false from the extractor to skip the attribute
// for that entry.
//
// # Handler Decoration
//
// LogHandlerDecorator can wrap any slog.Handler:
//
//	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	log := slog.New(logger.NewLogHandlerDecorator(jsonHandler, extractors...))
package logger
