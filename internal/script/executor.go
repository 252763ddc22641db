// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ggtools/gg/internal/config"
)

type (
	// Command is a fully resolved script invocation.
	Command struct {
		// Script is the configured script name.
		Script string
		// Line is the command line before word splitting, as printed.
		Line string
		// Argv is the split command line; Argv[0] is the program.
		Argv []string
		// Dir is the working directory for the program.
		Dir string
		// Env is the environment passed to the program.
		Env []string
	}

	// Replacer transfers control to cmd. Implementations replacing the
	// process image do not return on success.
	Replacer func(cmd *Command) error

	// Loader discovers the repository configuration for a directory.
	Loader interface {
		AutoLoadForRepo(ctx context.Context, dir string) (*config.LoadedConfig, error)
	}

	// Executor runs configured scripts. Ambient state (working directory,
	// environment, stderr) is injected so resolution is testable.
	Executor struct {
		// Configs loads the configuration. Required.
		Configs Loader
		// Roots locates the repository root used as the working directory.
		// When nil, or when the lookup fails, WorkDir is used.
		Roots config.RootFinder
		// WorkDir is the directory the invocation started in.
		WorkDir string
		// Env expands $VAR references and is inherited by the program.
		Env []string
		// Stderr receives the "> command line" echo. Nil discards it.
		Stderr io.Writer
		// Replace hands control to the program. Nil uses the platform default.
		Replace Replacer
	}
)

// Prepare resolves args[0] to a configured script and builds the command
// that Run would hand control to. args[1:] are passed to the script.
func (e *Executor) Prepare(ctx context.Context, args []string) (*Command, error) {
	if len(args) == 0 {
		return nil, ErrNoScriptSpecified
	}
	name, rest := args[0], args[1:]

	loaded, err := e.Configs.AutoLoadForRepo(ctx, e.WorkDir)
	if err != nil {
		return nil, err
	}

	def, ok := loaded.ConfigOrDefault().Script(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	line, err := BuildLine(def.BaseCommand(name), rest)
	if err != nil {
		return nil, err
	}

	argv, err := Split(line, e.Env)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	return &Command{
		Script: name,
		Line:   line,
		Argv:   argv,
		Dir:    e.dir(ctx),
		Env:    e.Env,
	}, nil
}

// Run prepares the script, prints its command line and hands control to
// it. On Unix a successful Run does not return.
func (e *Executor) Run(ctx context.Context, args []string) error {
	cmd, err := e.Prepare(ctx, args)
	if err != nil {
		return err
	}

	if e.Stderr != nil {
		if _, err := fmt.Fprintf(e.Stderr, "> %s\n", cmd.Line); err != nil {
			slog.Debug("failed to echo command line", "error", err)
		}
	}

	replace := e.Replace
	if replace == nil {
		replace = Replace
	}
	return replace(cmd)
}

// dir returns the repository root, or the working directory when the root
// cannot be determined.
func (e *Executor) dir(ctx context.Context) string {
	if e.Roots == nil {
		return e.WorkDir
	}
	root, err := e.Roots.Root(ctx, e.WorkDir)
	if err != nil {
		slog.Warn("failed to find repository root, using working directory", "dir", e.WorkDir, "error", err)
		return e.WorkDir
	}
	return root
}

// chdir switches to dir ahead of the handover. An empty dir is a no-op.
func chdir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.Chdir(dir)
}

// lookProgram resolves program for a child running in dir. A relative path
// with a separator names a file below dir; a bare name is searched in PATH.
func lookProgram(dir, program string) (string, error) {
	if dir != "" && !filepath.IsAbs(program) && strings.ContainsAny(program, `/`+string(filepath.Separator)) {
		program = filepath.Join(dir, program)
	}
	return exec.LookPath(program)
}
