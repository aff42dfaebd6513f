package cli

import (
	"github.com/deepnoodle-ai/structure"
	"github.com/deepnoodle-ai/structure/mcpserver"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
)

func RegisterMCPCommand(app *wontoncli.App, deps Deps) {
	app.Command("mcp").
		Description("Serve structured output as MCP tools over stdio").
		Long(`Run a Model Context Protocol server on stdin and stdout. It provides two
tools: "structure" generates JSON for a prompt and an inline schema, and
"translate_schema" returns the JSON Schema for an inline schema.

Logs are written to stderr so they do not interfere with the protocol.

Examples:
  llm mcp --model gpt-4o`).
		NoArgs().
		Flags(
			wontoncli.String("model", "m").
				Env("LLM_MODEL").
				Help("Model used when a tool call does not name one"),
			wontoncli.Int("max-tokens", "").Help("Maximum number of tokens to generate"),
		).
		Run(func(ctx *wontoncli.Context) error {
			env, err := loadEnvironment(ctx, deps)
			if err != nil {
				return wontoncli.Errorf("%v", err)
			}
			maxTokens := ctx.Int("max-tokens")
			if maxTokens <= 0 {
				maxTokens = env.config.MaxTokens
			}

			structurer := structure.New(structure.Options{
				Registry:  deps.registry(),
				Settings:  env.config.Settings(env.logger),
				Logger:    env.logger,
				MaxTokens: maxTokens,
			})
			server := mcpserver.New(structurer, mcpserver.Options{
				Name:         "llm",
				Version:      Version,
				DefaultModel: resolveModel(ctx.String("model"), env.config),
				Logger:       env.logger,
			})

			env.logger.Info("serving MCP tools on stdio")
			if err := server.ServeStdio(); err != nil {
				return wontoncli.Errorf("%v", err)
			}
			return nil
		})
}
