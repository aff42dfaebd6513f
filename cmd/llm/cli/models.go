package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/deepnoodle-ai/structure"
	"github.com/deepnoodle-ai/structure/providers"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
)

func RegisterModelsCommand(app *wontoncli.App, deps Deps) {
	app.Command("models").
		Description("Show which provider serves a model and whether it supports structured output").
		Long(`Check model identifiers against the registered providers. With no
arguments the models each registered provider lists are shown.

Examples:
  llm models
  llm models gpt-4o gemini-2.5-flash my-local-model`).
		Run(func(ctx *wontoncli.Context) error {
			ids := make([]string, 0, ctx.NArg())
			for i := 0; i < ctx.NArg(); i++ {
				ids = append(ids, ctx.Arg(i))
			}
			return runModels(deps.stdout(), deps.registry(), ids)
		})
}

func runModels(w io.Writer, registry *providers.Registry, ids []string) error {
	if len(ids) == 0 {
		ids = registeredModels(registry)
	}

	t := newTable("MODEL", "PROVIDER", "STRUCTURED OUTPUT")
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		label := id
		if id == structure.DefaultModel {
			label = id + mutedStyle.Sprint(" (default)")
		}

		entry, err := registry.Resolve(id)
		if errors.Is(err, providers.ErrUnknownModel) {
			t.add(label, mutedStyle.Sprint("none"), warningStyle.Sprint(xmark+" unknown model"))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", id, err)
		}
		supported := warningStyle.Sprint(xmark + " no")
		if entry.SupportsStructuredOutput(id) {
			supported = outputStyle.Sprint(checkmark + " yes")
		}
		t.add(label, entry.Name, supported)
	}
	t.write(w)
	return nil
}

// registeredModels returns the models listed by each provider entry, in
// registration order.
func registeredModels(registry *providers.Registry) []string {
	var ids []string
	for _, entry := range registry.Entries() {
		ids = append(ids, entry.Models...)
	}
	return ids
}
