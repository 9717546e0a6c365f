// Package observability provides logging, metrics, and tracing helpers
// for the composable runtime.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every logging helper accepts a nil logger and does nothing.
package observability

import "log/slog"

// EnrichLogger adds publisher context to a logger.
// Returns a new logger with a publisher field.
func EnrichLogger(logger *slog.Logger, publisher string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("publisher", publisher))
}

// LogSlotSwap logs a completed behavior slot replacement.
func LogSlotSwap(logger *slog.Logger, entity, slot string) {
	if logger == nil {
		return
	}
	logger.Debug("slot replaced",
		slog.String("entity", entity),
		slog.String("slot", slot),
	)
}

// LogConstruction logs a singleton or factory construction.
func LogConstruction(logger *slog.Logger, key string, shared bool) {
	if logger == nil {
		return
	}
	logger.Debug("instance constructed",
		slog.String("key", key),
		slog.Bool("shared", shared),
	)
}

// LogConstructionError logs a failed construction. The key stays
// retryable, so this is a warning rather than an error.
func LogConstructionError(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("construction failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogNotifyStart logs the start of a notification pass. The publisher is
// expected to already be on the logger via EnrichLogger.
func LogNotifyStart(logger *slog.Logger, eventType string, subscribers int) {
	if logger == nil {
		return
	}
	logger.Debug("notification starting",
		slog.String("event_type", eventType),
		slog.Int("subscribers", subscribers),
	)
}

// LogNotifyComplete logs a notification pass with no handler failures.
func LogNotifyComplete(logger *slog.Logger, eventType string, subscribers int) {
	if logger == nil {
		return
	}
	logger.Debug("notification completed",
		slog.String("event_type", eventType),
		slog.Int("subscribers", subscribers),
	)
}

// LogNotifyError logs handler failures from a notification pass.
// Delivery to the remaining subscribers already completed.
func LogNotifyError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("notification had failures",
		slog.String("error", err.Error()),
	)
}
