// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ggtools/gg/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand creates the gg command tree for app.
func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gg",
		Short: "Run the scripts of the current repository",
		Long: TitleStyle.Render("gg") + SubtitleStyle.Render(" - run the scripts of the current repository") + `

gg reads scripts from a JSON file at the root of the git repository you are
in (or from the current directory outside a repository). The first file
found wins:

  .ggrc.json, .gg.json, gg.config.json

` + SubtitleStyle.Render("Configuration:") + `
  {
    "scripts": {
      "build": "go build ./...",
      "test": "go test"
    }
  }

` + SubtitleStyle.Render("Examples:") + `
  gg run build              Run the 'build' script
  gg test -run TestFoo      Run 'test' with extra arguments (same as gg run test ...)
  gg config show            Show the discovered scripts`,
	}

	addGlobalFlags(root.PersistentFlags())
	root.AddCommand(newRunCommand(app), newConfigCommand(app))

	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	// Built-in commands must exist before dispatch asks the grammar.
	root.InitDefaultHelpCmd()
	root.InitDefaultCompletionCmd()
	root.InitDefaultHelpFlag()

	return root
}

// versionString returns a formatted version string for display.
func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs gg with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		renderError(os.Stderr, err, false)
		os.Exit(int(types.ExitFailure))
	}
	os.Exit(app.Run(context.Background(), os.Args[1:]))
}
