package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/deepnoodle-ai/structure/schema"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
	"github.com/pmezard/go-difflib/difflib"
)

func RegisterSchemaDiffCommand(app *wontoncli.App, deps Deps) {
	app.Command("schema-diff").
		Description("Compare the JSON Schemas produced by two schema files").
		Long(`Translate two schema files and print a unified diff of the JSON Schemas
sent to the model. Files in different forms can be compared, for example a
simple YAML schema against its JSON Schema equivalent.

Examples:
  llm schema-diff person.yaml person.json
  llm schema-diff old.yaml new.yaml --context 5`).
		Args("old", "new").
		Flags(
			wontoncli.Int("context", "c").Default(3).Help("Number of context lines to show around changes"),
		).
		Run(func(ctx *wontoncli.Context) error {
			if ctx.NArg() != 2 {
				return wontoncli.Errorf("expected two schema files, got %d", ctx.NArg())
			}
			if err := runSchemaDiff(deps.stdout(), ctx.Arg(0), ctx.Arg(1), ctx.Int("context")); err != nil {
				return wontoncli.Errorf("%v", err)
			}
			return nil
		})
}

func runSchemaDiff(w io.Writer, oldPath, newPath string, contextLines int) error {
	oldText, err := schemaText(oldPath)
	if err != nil {
		return err
	}
	newText, err := schemaText(newPath)
	if err != nil {
		return err
	}

	diff, err := generateUnifiedDiff(oldText, newText, oldPath, newPath, contextLines)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(w, outputStyle.Sprintf("%s %s and %s translate to the same schema", checkmark, oldPath, newPath))
		return nil
	}
	for _, line := range strings.SplitAfter(diff, "\n") {
		fmt.Fprint(w, colorDiffLine(line))
	}
	return nil
}

// schemaText renders a schema file as indented JSON Schema text.
func schemaText(path string) (string, error) {
	m, err := schema.LoadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	data, err := json.MarshalIndent(m.JSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode schema %s: %w", path, err)
	}
	return string(data) + "\n", nil
}

// generateUnifiedDiff creates a unified diff between two texts
func generateUnifiedDiff(oldContent, newContent, oldFile, newFile string, contextLines int) (string, error) {
	if contextLines < 0 {
		contextLines = 0
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: oldFile,
		ToFile:   newFile,
		FromDate: "original",
		ToDate:   "modified",
		Context:  contextLines,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return headerStyle.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return infoStyle.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return outputStyle.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return removedStyle.Sprint(line)
	}
	return line
}
