package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/structure/cmd/llm/cli"
	_ "github.com/deepnoodle-ai/structure/providers/google"
	_ "github.com/deepnoodle-ai/structure/providers/openai"
	wontoncli "github.com/deepnoodle-ai/wonton/cli"
)

func main() {
	app := cli.NewApp(cli.Deps{})
	if err := app.Execute(); err != nil {
		if wontoncli.IsHelpRequested(err) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(wontoncli.GetExitCode(err))
	}
}
