// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/pflag"

	"github.com/ggtools/gg/internal/config"
	"github.com/ggtools/gg/internal/dispatch"
	"github.com/ggtools/gg/internal/git"
	"github.com/ggtools/gg/internal/script"
)

type (
	// App wires CLI services and the ambient state of one invocation. It is
	// the composition root for the CLI layer: all Cobra command handlers
	// receive an App reference.
	App struct {
		workDir string
		env     []string
		stdout  io.Writer
		stderr  io.Writer
		roots   config.RootFinder
		replace script.Replacer

		settings config.Settings
	}

	// Dependencies defines the injection points for building an App. Zero
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		// WorkDir is the directory discovery starts from (default: os.Getwd).
		WorkDir string
		// Env is the environment scripts see (default: os.Environ).
		Env []string
		// Stdout receives command output (default: os.Stdout).
		Stdout io.Writer
		// Stderr receives errors and logs (default: os.Stderr).
		Stderr io.Writer
		// Roots locates repository roots (default: git with the --git binary).
		Roots config.RootFinder
		// Replace hands control to a script (default: script.Replace).
		Replace script.Replacer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		deps.WorkDir = wd
	}
	if deps.Env == nil {
		deps.Env = os.Environ()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	return &App{
		workDir:  deps.WorkDir,
		env:      deps.Env,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		roots:    deps.Roots,
		replace:  deps.Replace,
		settings: config.DefaultSettings(),
	}, nil
}

// Run dispatches args (without the program name) and returns the process
// exit status. A script that replaces the process image never returns.
func (a *App) Run(ctx context.Context, args []string) int {
	settings, err := config.LoadSettings(preParseGlobalFlags(args))
	if err != nil {
		renderError(a.stderr, err, false)
		return int(exitCodeOf(err))
	}
	a.settings = settings
	if a.roots == nil {
		a.roots = git.RootFinder{Binary: settings.Git}
	}
	slog.SetDefault(slog.New(newLogger(a.stderr, settings.Verbose)))

	root := newRootCommand(a)
	resolver := &dispatch.Resolver{
		Grammar: newCobraGrammar(root),
		Configs: a.locator(),
		WorkDir: a.workDir,
	}

	res, err := resolver.Resolve(ctx, args)
	if err != nil {
		err = classifyError(err)
		renderError(a.stderr, err, a.settings.Verbose)
		return int(exitCodeOf(err))
	}
	slog.Debug("resolved arguments", "phase", res.Phase, "args", res.Args)

	root.SetArgs(res.Args)
	err = fang.Execute(
		ctx,
		root,
		fang.WithVersion(versionString()),
		fang.WithoutManpage(),
		fang.WithErrorHandler(a.handleError),
	)
	return int(exitCodeOf(err))
}

func (a *App) locator() *config.Locator {
	return config.NewLocator(a.roots)
}

func (a *App) executor() *script.Executor {
	return &script.Executor{
		Configs: a.locator(),
		Roots:   a.roots,
		WorkDir: a.workDir,
		Env:     a.env,
		Stderr:  a.stderr,
		Replace: a.replace,
	}
}

// loadConfig discovers the repository configuration. A nil result means no
// configuration file exists.
func (a *App) loadConfig(ctx context.Context) (*config.LoadedConfig, error) {
	return a.locator().AutoLoadForRepo(ctx, a.workDir)
}

// addGlobalFlags registers the flags bound to config.Settings.
func addGlobalFlags(flags *pflag.FlagSet) {
	defaults := config.DefaultSettings()
	flags.BoolP(config.SettingVerbose, "v", defaults.Verbose, "enable debug logging and detailed error help")
	flags.String(config.SettingGit, defaults.Git, "git executable used to find the repository root")
}

// preParseGlobalFlags reads the global flags ahead of dispatch, which needs
// the settings before Cobra runs. Parsing stops at the first positional
// argument so script arguments are never taken as gg flags. Errors are
// left for Cobra to report.
func preParseGlobalFlags(args []string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("gg", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.ParseErrorsAllowlist.UnknownFlags = true
	flags.SetInterspersed(false)
	addGlobalFlags(flags)

	if err := flags.Parse(args); err != nil {
		slog.Debug("global flags not pre-parsed", "error", err)
	}
	return flags
}
