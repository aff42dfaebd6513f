package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Level
	}{
		{"debug level", "debug", LevelDebug},
		{"info level", "info", LevelInfo},
		{"warn level", "warn", LevelWarn},
		{"warning alias", "warning", LevelWarn},
		{"error level", "error", LevelError},
		{"none level", "none", LevelNone},
		{"uppercase", "DEBUG", LevelDebug},
		{"padded", " info ", LevelInfo},
		{"invalid level", "invalid", defaultLevel},
		{"empty string", "", defaultLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}
}

func TestFromString(t *testing.T) {
	require.IsType(t, &NullLogger{}, FromString("none"))
	require.IsType(t, &StructuredLogger{}, FromString("debug"))
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	logger.Debug("debug message", "key", "value")
	logger.Error("error message", "key", "value")
	require.Same(t, logger, logger.With("context", "value"))
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelWarn, true)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warning", "model", "gpt-4o")
	logger.With("provider", "openai").Error("shown error")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown warning")
	require.Contains(t, out, "model=gpt-4o")
	require.Contains(t, out, "provider=openai")
	require.Contains(t, out, "caller=log/logger_test.go:")
}

func TestContextFunctions(t *testing.T) {
	logger := NewNullLogger()

	ctx := WithLogger(context.Background(), logger)
	require.Equal(t, Logger(logger), Ctx(ctx))

	//nolint:staticcheck // SA1012: nil context is handled
	require.Equal(t, Logger(logger), Ctx(WithLogger(nil, logger)))

	require.IsType(t, &StructuredLogger{}, Ctx(context.Background()))
}

func TestFormatCaller(t *testing.T) {
	require.Equal(t, "log/logger.go:12", formatCaller("/src/module/log/logger.go", 12))
	require.Equal(t, "main.go:3", formatCaller("main.go", 3))
}
