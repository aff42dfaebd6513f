// Package cli implements the llm command line tool.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/deepnoodle-ai/structure/config"
	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
)

const Version = "0.1.0"

// Deps are the dependencies shared by the commands. Zero values select the
// default registry and the process's standard streams.
type Deps struct {
	Registry *providers.Registry
	Stdout   io.Writer
	Stderr   io.Writer
}

func (d Deps) registry() *providers.Registry {
	if d.Registry != nil {
		return d.Registry
	}
	return providers.DefaultRegistry()
}

func (d Deps) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d Deps) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

// NewApp builds the llm command with every subcommand registered.
func NewApp(deps Deps) *wontoncli.App {
	app := wontoncli.New("llm").
		Description("Request schema-constrained output from language models").
		Version(Version).
		GlobalFlags(
			wontoncli.String("config", "").
				Help("Path to a YAML or JSON config file (defaults to $LLM_CONFIG, then ~/.config/llm/config.yaml)"),
			wontoncli.String("log-level", "").
				Env("LLM_LOG_LEVEL").
				Help("Log level to use (none, debug, info, warn, error)"),
		)

	RegisterStructureCommand(app, deps)
	RegisterSchemaCommand(app, deps)
	RegisterSchemaDiffCommand(app, deps)
	RegisterModelsCommand(app, deps)
	RegisterMCPCommand(app, deps)
	return app
}

// environment is the configuration and logger shared by one invocation.
type environment struct {
	config *config.Config
	logger log.Logger
}

// loadEnvironment reads the global flags. The --log-level flag wins over
// the config file, which wins over the default of warn.
func loadEnvironment(ctx *wontoncli.Context, deps Deps) (*environment, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	level := strings.TrimSpace(ctx.String("log-level"))
	if level == "" {
		level = cfg.LogLevel
	}
	return &environment{config: cfg, logger: newLogger(deps.stderr(), level)}, nil
}

func newLogger(w io.Writer, level string) log.Logger {
	if w == os.Stderr {
		return log.FromString(level)
	}
	lvl := log.LevelFromString(level)
	if lvl == log.LevelNone {
		return log.NewNullLogger()
	}
	return log.NewWithWriter(w, lvl, true)
}
