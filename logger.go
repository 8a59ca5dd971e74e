package hierembed

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hierembed-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithItem adds an item index field to the logger.
func (l *Logger) WithItem(item int) *Logger {
	return &Logger{
		Logger: l.Logger.With("item", item),
	}
}

// WithN adds an item count field to the logger.
func (l *Logger) WithN(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n),
	}
}

// LogPlacement logs the placement of a single item.
func (l *Logger) LogPlacement(ctx context.Context, item, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "placement failed",
			"item", item,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "item placed",
			"item", item,
			"dimension", dimension,
		)
	}
}

// LogEmbed logs a completed embedding run.
func (l *Logger) LogEmbed(ctx context.Context, n int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "embedding failed",
			"n", n,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "embedding computed",
			"n", n,
			"dimension", max(n-1, 0),
			"duration", duration,
		)
	}
}
