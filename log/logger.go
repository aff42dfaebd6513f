// Package log provides the leveled, structured logger used across the
// module. Log output goes to stderr so that stdout carries only results.
package log

import (
	"context"
	"strings"
)

type contextKey string

const loggerKey contextKey = "structure.logger"

var defaultLevel = LevelWarn

// Logger is the logging interface. It mirrors the slog methods so that
// other backends can be adapted to it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a Logger that includes the given attributes in each
	// output operation.
	With(args ...any) Logger
}

// WithLogger returns a new context carrying the logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns the logger stored in the context, or a default logger.
func Ctx(ctx context.Context) Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(Logger); ok {
			return logger
		}
	}
	return New(defaultLevel)
}

// LevelFromString converts a level name to a Level. Unknown names yield the
// default level.
func LevelFromString(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return defaultLevel
	}
}

// FromString returns a logger for the named level. "none" disables logging.
func FromString(value string) Logger {
	level := LevelFromString(value)
	if level == LevelNone {
		return NewNullLogger()
	}
	return New(level)
}

// NullLogger discards everything.
type NullLogger struct{}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(msg string, args ...any) {}
func (l *NullLogger) Info(msg string, args ...any)  {}
func (l *NullLogger) Warn(msg string, args ...any)  {}
func (l *NullLogger) Error(msg string, args ...any) {}
func (l *NullLogger) With(args ...any) Logger       { return l }
