package svdb

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with svdb-specific context.
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

// WithCollection adds a collection path field to the logger.
func (l *Logger) WithCollection(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("collection", path),
	}
}

// LogInsert logs the outcome of an insert operation.
func (l *Logger) LogInsert(id string, err error) {
	if err != nil {
		l.Error("insert failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Info("insert completed",
			"id", id,
		)
	}
}

// LogUpdate logs the outcome of an update operation.
func (l *Logger) LogUpdate(id string, err error) {
	if err != nil {
		l.Error("update failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Info("update completed",
			"id", id,
		)
	}
}

// LogDelete logs the outcome of a delete operation.
func (l *Logger) LogDelete(id string, err error) {
	if err != nil {
		l.Error("delete failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Info("delete completed",
			"id", id,
		)
	}
}

// LogTopK logs the outcome of a top-k retrieval.
func (l *Logger) LogTopK(k, results int, err error) {
	if err != nil {
		l.Error("top-k failed",
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("top-k completed",
			"k", k,
			"results", results,
		)
	}
}
