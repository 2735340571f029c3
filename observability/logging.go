package observability

import (
	"context"
	"log/slog"
	"os"
)

// LogLevel resolves the configured log level from LOG_LEVEL. Defaults
// to INFO for an unset or unrecognised value.
func LogLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds and installs the process-wide default logger.
// LOG_FORMAT selects "json" (default) or "text" output.
func SetupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     LogLevel(),
		AddSource: LogLevel() == slog.LevelDebug,
	}

	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

type ctxKey string

const ctxKeyLogger ctxKey = "logger"

// WithLogger attaches logger to ctx for retrieval by FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// FromContext returns the logger attached to ctx, or slog.Default() if
// none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithCorrelationID returns a logger annotated with a workflow
// execution's correlation ID, the execution-scoped analogue of this
// module's run_id/task_id/flow_id logger annotations.
func WithCorrelationID(logger *slog.Logger, correlationID string) *slog.Logger {
	return logger.With("correlation_id", correlationID)
}
