// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ggtools/gg/internal/config"
)

// RunCommand is the subcommand fallback resolution rewrites to.
const RunCommand = "run"

const (
	// PhaseStrict means the arguments were accepted as given.
	PhaseStrict Phase = iota + 1
	// PhaseFallback means the arguments were rewritten to run a script.
	PhaseFallback
)

var (
	// ErrUnknownSubcommand is the sentinel error wrapped by UnknownSubcommandError.
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	// ErrFallbackDidNotResolve is returned when the rewritten arguments are
	// still not recognised by the grammar. It indicates a wiring defect.
	ErrFallbackDidNotResolve = errors.New("fallback arguments did not resolve")
)

type (
	// Phase identifies which resolution phase accepted the arguments.
	Phase int

	// Grammar reports whether an argument vector names an unknown
	// subcommand and, if so, which token.
	Grammar interface {
		UnknownSubcommand(args []string) (name string, unknown bool)
	}

	// Loader discovers the repository configuration for a directory.
	Loader interface {
		AutoLoadForRepo(ctx context.Context, dir string) (*config.LoadedConfig, error)
	}

	// Resolver runs the two resolution phases.
	Resolver struct {
		Grammar Grammar
		Configs Loader
		// WorkDir is the directory configuration discovery starts from.
		WorkDir string
	}

	// Resolution is the outcome of a successful resolution.
	Resolution struct {
		// Args are the arguments to hand to the grammar.
		Args []string
		// Phase is the phase that accepted Args.
		Phase Phase
		// Script is the script name selected by fallback, empty otherwise.
		Script string
	}

	// UnknownSubcommandError is returned when the first word is neither a
	// subcommand nor a configured script.
	UnknownSubcommandError struct {
		Name string
	}
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStrict:
		return "strict"
	case PhaseFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Error implements the error interface.
func (e *UnknownSubcommandError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownSubcommand, e.Name)
}

// Unwrap returns ErrUnknownSubcommand for errors.Is compatibility.
func (e *UnknownSubcommandError) Unwrap() error { return ErrUnknownSubcommand }

// Resolve decides how args are dispatched.
//
// Arguments the grammar accepts, including ones with flag errors, are
// returned unchanged. An unknown first word is looked up as a script; a
// configuration that fails to load is logged and treated as empty.
func (r *Resolver) Resolve(ctx context.Context, args []string) (*Resolution, error) {
	name, unknown := r.Grammar.UnknownSubcommand(args)
	if !unknown {
		return &Resolution{Args: args, Phase: PhaseStrict}, nil
	}

	cfg := r.loadConfig(ctx)
	if !cfg.HasScript(name) {
		return nil, &UnknownSubcommandError{Name: name}
	}

	rewritten := make([]string, 0, len(args)+1)
	rewritten = append(rewritten, RunCommand)
	rewritten = append(rewritten, args...)

	if again, stillUnknown := r.Grammar.UnknownSubcommand(rewritten); stillUnknown {
		return nil, fmt.Errorf("%w: %q", ErrFallbackDidNotResolve, again)
	}

	slog.Debug("dispatching to script", "script", name)
	return &Resolution{Args: rewritten, Phase: PhaseFallback, Script: name}, nil
}

func (r *Resolver) loadConfig(ctx context.Context) *config.Config {
	loaded, err := r.Configs.AutoLoadForRepo(ctx, r.WorkDir)
	if err != nil {
		slog.Warn("failed to load configuration", "error", err)
		return config.Empty()
	}
	return loaded.ConfigOrDefault()
}
