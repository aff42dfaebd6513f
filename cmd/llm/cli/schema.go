package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/deepnoodle-ai/structure/schema"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func RegisterSchemaCommand(app *wontoncli.App, deps Deps) {
	app.Command("schema").
		Description("Show how schema files translate").
		Long(`Translate schema files without calling a model. The pattern may use
doublestar globs such as schemas/**/*.yaml.

The table format lists each field with its type and whether it is required.
The json format prints the JSON Schema that structure sends to the model.
With --watch, matching files are translated again whenever they change.

Examples:
  llm schema person.yaml
  llm schema 'schemas/**/*.{yaml,json}' --format json
  llm schema 'schemas/*.yaml' --watch`).
		Args("pattern").
		Flags(
			wontoncli.String("format", "f").Default(formatTable).Help("Output format (table, json)"),
			wontoncli.Bool("watch", "w").Help("Translate files again when they change"),
			wontoncli.String("debounce", "").Default("500ms").Help("Minimum time between reports for one file in watch mode"),
		).
		Run(func(ctx *wontoncli.Context) error {
			env, err := loadEnvironment(ctx, deps)
			if err != nil {
				return wontoncli.Errorf("%v", err)
			}
			pattern := ctx.Arg(0)
			format := ctx.String("format")
			if format != formatTable && format != formatJSON {
				return wontoncli.Errorf("invalid format %q: expected table or json", format)
			}

			w := deps.stdout()
			if !ctx.Bool("watch") {
				if err := runSchema(w, pattern, format); err != nil {
					return wontoncli.Errorf("%v", err)
				}
				return nil
			}

			debounce, err := time.ParseDuration(ctx.String("debounce"))
			if err != nil {
				return wontoncli.Errorf("invalid debounce %q: %v", ctx.String("debounce"), err)
			}
			sw, err := newSchemaWatcher(schemaWatchOptions{
				Patterns: []string{pattern},
				Debounce: debounce,
				Logger:   env.logger,
				OnChange: func(path string) error {
					fmt.Fprintln(w, mutedStyle.Sprintf("%s changed %s", bullet, path))
					return renderSchemaFiles(w, []string{path}, format)
				},
			})
			if err != nil {
				return wontoncli.Errorf("%v", err)
			}

			goCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if err := runSchema(w, pattern, format); err != nil {
				fmt.Fprintln(deps.stderr(), warningStyle.Sprint(err.Error()))
			}
			fmt.Fprintln(w, infoStyle.Sprintf("Watching %s (press Ctrl+C to stop)", pattern))
			if err := sw.Start(goCtx); err != nil {
				return wontoncli.Errorf("%v", err)
			}
			return nil
		})
}

// runSchema translates every file matching pattern and writes the result.
func runSchema(w io.Writer, pattern, format string) error {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no schema files match %s", pattern)
	}
	return renderSchemaFiles(w, paths, format)
}

func renderSchemaFiles(w io.Writer, paths []string, format string) error {
	models := make([]*schema.Model, 0, len(paths))
	for _, path := range paths {
		m, err := schema.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		models = append(models, m)
	}

	if format == formatJSON {
		return writeSchemaJSON(w, paths, models)
	}
	for i, m := range models {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeSchemaTable(w, paths[i], m)
	}
	return nil
}

// writeSchemaJSON prints the JSON Schema of a single file, or an object
// keyed by path when several files match.
func writeSchemaJSON(w io.Writer, paths []string, models []*schema.Model) error {
	var value any
	if len(models) == 1 {
		value = models[0].JSONSchema()
	} else {
		byPath := orderedmap.New[string, *jsonschema.Schema]()
		for i, m := range models {
			byPath.Set(paths[i], m.JSONSchema())
		}
		value = byPath
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeSchemaTable(w io.Writer, path string, m *schema.Model) {
	strict := outputStyle.Sprint(checkmark + " strict")
	if _, ok := m.StrictJSONSchema(); !ok {
		strict = warningStyle.Sprint(xmark + " not strict")
	}
	fmt.Fprintf(w, "%s %s  %s\n", headerStyle.Sprint(m.Name), mutedStyle.Sprintf("(%s)", path), strict)

	t := newTable("FIELD", "TYPE", "REQUIRED")
	for _, f := range m.Fields {
		required := mutedStyle.Sprint("-")
		if f.Required {
			required = outputStyle.Sprint(checkmark)
		}
		t.add(f.Name, f.Type.String(), required)
	}
	t.write(w)
}
