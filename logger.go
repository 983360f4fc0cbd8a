package bitdex

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bitdex-specific context.
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

// WithKey adds a key field to the logger.
func (l *Logger) WithKey(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", key),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(key string, id uint32, created bool) {
	l.Debug("insert completed",
		"key", key,
		"id", id,
		"key_created", created,
	)
}

// LogBatchInsert logs a batch insert operation.
func (l *Logger) LogBatchInsert(key string, count int, created bool) {
	l.Debug("batch insert completed",
		"key", key,
		"count", count,
		"key_created", created,
	)
}

// LogLookup logs a single-key read that failed.
func (l *Logger) LogLookup(op, key string, err error) {
	if err != nil {
		l.Error(op+" failed",
			"key", key,
			"error", err,
		)
	}
}

// LogSetOp logs a two-key set operation.
func (l *Logger) LogSetOp(op, key1, key2 string, results int, err error) {
	if err != nil {
		l.Error(op+" failed",
			"key1", key1,
			"key2", key2,
			"error", err,
		)
	} else {
		l.Debug(op+" completed",
			"key1", key1,
			"key2", key2,
			"results", results,
		)
	}
}

// LogSnapshot logs a snapshot write.
func (l *Logger) LogSnapshot(keys int, bytes int64, compression string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"keys", keys,
			"error", err,
		)
	} else {
		l.Info("snapshot written",
			"keys", keys,
			"bytes", bytes,
			"compression", compression,
		)
	}
}

// LogRestore logs a snapshot read.
func (l *Logger) LogRestore(keys int, bytes int64, err error) {
	if err != nil {
		l.Error("restore failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.Info("restore completed",
			"keys", keys,
			"bytes", bytes,
		)
	}
}
