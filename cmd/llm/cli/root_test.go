package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	require.NotNil(t, NewApp(Deps{}))
}

func TestDepsDefaults(t *testing.T) {
	var deps Deps
	require.Equal(t, providers.DefaultRegistry(), deps.registry())
	require.Equal(t, os.Stdout, deps.stdout())
	require.Equal(t, os.Stderr, deps.stderr())

	var buf bytes.Buffer
	registry := providers.NewRegistry()
	deps = Deps{Registry: registry, Stdout: &buf, Stderr: &buf}
	require.Equal(t, registry, deps.registry())
	require.Equal(t, &buf, deps.stdout())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	_, ok := newLogger(&buf, "none").(*log.NullLogger)
	require.True(t, ok)

	logger := newLogger(&buf, "info")
	logger.Debug("hidden")
	logger.Info("shown", "model", "gpt-4o")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "gpt-4o")

	// An empty level falls back to warn.
	buf.Reset()
	logger = newLogger(&buf, "")
	logger.Info("hidden")
	logger.Warn("warned")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "warned")
}
