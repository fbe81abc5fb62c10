package eule

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with eule-specific context.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSetCount adds a set count field to the logger.
func (l *Logger) WithSetCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("sets", count),
	}
}

// WithMethod adds a clustering method field to the logger.
func (l *Logger) WithMethod(method string) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", method),
	}
}

// LogDeduplicate logs the corrective deduplication of one input set.
func (l *Logger) LogDeduplicate(ctx context.Context, key string, removed int) {
	l.WarnContext(ctx, "input set contains duplicates, deduplicating",
		"key", key,
		"removed", removed,
	)
}

// LogDecompose logs a completed decomposition.
func (l *Logger) LogDecompose(ctx context.Context, sets, regions int, duration time.Duration) {
	l.DebugContext(ctx, "decomposition completed",
		"sets", sets,
		"regions", regions,
		"duration", duration,
	)
}

// LogParallelDecompose logs a completed parallel decomposition.
func (l *Logger) LogParallelDecompose(ctx context.Context, sets, regions int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "parallel decomposition failed",
			"sets", sets,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "parallel decomposition completed",
		"sets", sets,
		"regions", regions,
		"duration", duration,
	)
}

// LogClustering logs a completed cluster assignment.
func (l *Logger) LogClustering(ctx context.Context, method string, sets, clusters int, duration time.Duration) {
	l.DebugContext(ctx, "clustering completed",
		"method", method,
		"sets", sets,
		"clusters", clusters,
		"duration", duration,
	)
}

// LogMerge logs the merge of per-cluster diagrams into a global diagram.
func (l *Logger) LogMerge(ctx context.Context, regions, collisions int, duration time.Duration) {
	l.DebugContext(ctx, "diagram merge completed",
		"regions", regions,
		"collisions", collisions,
		"duration", duration,
	)
}
