// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// newRunCommand creates the `gg run` command.
func newRunCommand(app *App) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Run a configured script",
		Long: `Run a script from the repository configuration.

Arguments after the script name are quoted and appended to the script's
command line, so flags such as --fix reach the script instead of gg. The
script runs from the repository root and replaces the gg process.

Running "gg <script> [args...]" is the same as "gg run <script> [args...]"
when <script> is not a gg command.`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: app.completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runScript(cmd.Context(), args)
		},
	}

	// Everything after the script name belongs to the script.
	runCmd.Flags().SetInterspersed(false)

	return runCmd
}

func (a *App) runScript(ctx context.Context, args []string) error {
	if err := a.executor().Run(ctx, args); err != nil {
		return classifyError(err)
	}
	return nil
}

// completeScripts completes the script name, the first argument of run.
func (a *App) completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	loaded, err := a.loadConfig(cmd.Context())
	if err != nil {
		slog.Debug("completion could not load configuration", "error", err)
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, name := range loaded.ConfigOrDefault().Scripts.Keys() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
