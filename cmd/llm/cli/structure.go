package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/deepnoodle-ai/structure"
	"github.com/deepnoodle-ai/structure/config"
	"github.com/deepnoodle-ai/structure/providers"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
)

// structureRunner performs one structure invocation.
type structureRunner interface {
	Run(ctx context.Context, req structure.Request) (string, error)
}

type structureParams struct {
	request structure.Request
	timeout time.Duration
}

// providerOverrides are the per-invocation provider flags. They apply to the
// provider that serves the requested model.
type providerOverrides struct {
	apiKey   string
	endpoint string
}

func RegisterStructureCommand(app *wontoncli.App, deps Deps) {
	app.Command("structure").
		Description("Generate JSON output that matches a schema file").
		Long(`Translate a schema file into a model, ask a structured-output capable
model for a completion constrained to it, and print the JSON result.

The schema file is YAML or JSON in one of two forms:

  Person:            {"title": "Person",
    name: str         "properties": {"name": {"type": "string"}},
    age: int          "required": ["name"]}

Examples:
  llm structure "Ada Lovelace, 36" --schema person.yaml --model gpt-4o
  llm structure "$(cat bio.txt)" --schema person.json -m gemini-2.5-flash`).
		Args("prompt").
		Flags(
			wontoncli.String("schema", "s").Required().Help("Path to the schema file (YAML or JSON)"),
			wontoncli.String("model", "m").
				Env("LLM_MODEL").
				Help(fmt.Sprintf("Model to use (defaults to the config DefaultModel, then %s)", structure.DefaultModel)),
			wontoncli.String("timeout", "").Help("Request timeout, for example 30s or 2m"),
			wontoncli.Int("max-tokens", "").Help("Maximum number of tokens to generate"),
			wontoncli.String("api-key", "").Help("API key for the model's provider"),
			wontoncli.String("endpoint", "").Help("Custom endpoint URL for the model's provider"),
		).
		Run(func(ctx *wontoncli.Context) error {
			env, err := loadEnvironment(ctx, deps)
			if err != nil {
				return wontoncli.Errorf("%v", err)
			}

			timeout, err := parseTimeout(ctx.String("timeout"), env.config)
			if err != nil {
				return wontoncli.Errorf("%v", err)
			}
			maxTokens := ctx.Int("max-tokens")
			if maxTokens <= 0 {
				maxTokens = env.config.MaxTokens
			}
			modelID := resolveModel(ctx.String("model"), env.config)

			structurer := structure.New(structureOptions(env, deps.registry(), maxTokens, providerOverrides{
				apiKey:   ctx.String("api-key"),
				endpoint: ctx.String("endpoint"),
			}))

			goCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err = runStructure(goCtx, deps.stdout(), structurer, structureParams{
				request: structure.Request{
					Prompt:     ctx.Arg(0),
					SchemaPath: ctx.String("schema"),
					Model:      modelID,
				},
				timeout: timeout,
			})
			if err != nil {
				return wontoncli.Errorf("%v", err)
			}
			return nil
		})
}

// runStructure runs the request and writes the result followed by a
// newline. Nothing is written on failure.
func runStructure(ctx context.Context, w io.Writer, r structureRunner, params structureParams) error {
	if params.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.timeout)
		defer cancel()
	}
	out, err := r.Run(ctx, params.request)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// resolveModel picks the model flag, then the configured default, then the
// package default.
func resolveModel(flag string, cfg *config.Config) string {
	if model := strings.TrimSpace(flag); model != "" {
		return model
	}
	if cfg != nil && cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	return structure.DefaultModel
}

func parseTimeout(value string, cfg *config.Config) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if cfg == nil {
			return 0, nil
		}
		return time.Duration(cfg.Timeout), nil
	}
	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", value)
	}
	return timeout, nil
}

// structureOptions builds the structurer options from the config and flags.
// The flag overrides are applied by the structurer once the model has been
// resolved, which happens after the schema file is loaded.
func structureOptions(env *environment, registry *providers.Registry, maxTokens int, overrides providerOverrides) structure.Options {
	return structure.Options{
		Registry: registry,
		Settings: env.config.Settings(env.logger),
		Override: providers.Settings{
			APIKey:   overrides.apiKey,
			Endpoint: overrides.endpoint,
		},
		Logger:    env.logger,
		MaxTokens: maxTokens,
	}
}
