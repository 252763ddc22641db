// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ggtools/gg/internal/config"
)

type (
	// setGrammar knows a fixed set of subcommands and treats the first
	// non-flag argument as the subcommand token.
	setGrammar struct {
		known map[string]bool
		calls [][]string
	}

	fakeLoader struct {
		loaded *config.LoadedConfig
		err    error
		dirs   []string
	}

	// alwaysUnknown rejects every argument vector.
	alwaysUnknown struct{}
)

func newGrammar(known ...string) *setGrammar {
	g := &setGrammar{known: map[string]bool{}}
	for _, k := range known {
		g.known[k] = true
	}
	return g
}

func (g *setGrammar) UnknownSubcommand(args []string) (string, bool) {
	g.calls = append(g.calls, args)
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return arg, !g.known[arg]
	}
	return "", false
}

func (alwaysUnknown) UnknownSubcommand(args []string) (string, bool) {
	return args[0], true
}

func (f *fakeLoader) AutoLoadForRepo(_ context.Context, dir string) (*config.LoadedConfig, error) {
	f.dirs = append(f.dirs, dir)
	return f.loaded, f.err
}

func scriptsLoader(names ...string) *fakeLoader {
	scripts := config.Scripts{}
	for _, n := range names {
		scripts[n] = config.NewScriptDef("echo " + n)
	}
	return &fakeLoader{loaded: &config.LoadedConfig{Path: "/repo/.ggrc.json", Config: &config.Config{Scripts: scripts}}}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		scripts    []string
		want       *Resolution
		wantLoaded bool
	}{
		{
			name:    "built-in run",
			args:    []string{"run", "build"},
			scripts: []string{"build"},
			want:    &Resolution{Args: []string{"run", "build"}, Phase: PhaseStrict},
		},
		{
			name:    "built-in shadows script",
			args:    []string{"config", "show"},
			scripts: []string{"config"},
			want:    &Resolution{Args: []string{"config", "show"}, Phase: PhaseStrict},
		},
		{
			name: "no arguments",
			args: []string{},
			want: &Resolution{Args: []string{}, Phase: PhaseStrict},
		},
		{
			name: "flags only",
			args: []string{"--version"},
			want: &Resolution{Args: []string{"--version"}, Phase: PhaseStrict},
		},
		{
			name:       "script fallback",
			args:       []string{"build", "--release", "x"},
			scripts:    []string{"build"},
			want:       &Resolution{Args: []string{"run", "build", "--release", "x"}, Phase: PhaseFallback, Script: "build"},
			wantLoaded: true,
		},
		{
			name:       "script fallback after global flag",
			args:       []string{"-v", "build"},
			scripts:    []string{"build"},
			want:       &Resolution{Args: []string{"run", "-v", "build"}, Phase: PhaseFallback, Script: "build"},
			wantLoaded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader := scriptsLoader(tt.scripts...)
			r := &Resolver{
				Grammar: newGrammar("run", "config", "help", "completion"),
				Configs: loader,
				WorkDir: "/repo/sub",
			}

			got, err := r.Resolve(context.Background(), tt.args)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}

			if loaded := len(loader.dirs) > 0; loaded != tt.wantLoaded {
				t.Errorf("configuration loaded = %v, want %v", loaded, tt.wantLoaded)
			}
			if tt.wantLoaded && loader.dirs[0] != "/repo/sub" {
				t.Errorf("configuration loaded from %q, want %q", loader.dirs[0], "/repo/sub")
			}
		})
	}
}

func TestResolver_Resolve_Unknown(t *testing.T) {
	t.Parallel()

	r := &Resolver{
		Grammar: newGrammar("run"),
		Configs: scriptsLoader("build"),
		WorkDir: "/repo",
	}

	_, err := r.Resolve(context.Background(), []string{"deploy", "now"})
	var unknownErr *UnknownSubcommandError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Resolve() error = %v, want UnknownSubcommandError", err)
	}
	if unknownErr.Name != "deploy" {
		t.Errorf("Name = %q, want %q", unknownErr.Name, "deploy")
	}
	if !errors.Is(err, ErrUnknownSubcommand) {
		t.Error("error does not wrap ErrUnknownSubcommand")
	}
	if want := `unknown subcommand "deploy"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestResolver_Resolve_NoConfig(t *testing.T) {
	t.Parallel()

	r := &Resolver{Grammar: newGrammar("run"), Configs: &fakeLoader{}, WorkDir: "/repo"}

	_, err := r.Resolve(context.Background(), []string{"build"})
	if !errors.Is(err, ErrUnknownSubcommand) {
		t.Errorf("Resolve() error = %v, want ErrUnknownSubcommand", err)
	}
}

func TestResolver_Resolve_LoadFailureWarns(t *testing.T) {
	// Replaces the default logger; must not run in parallel.
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	loadErr := &config.ParseError{Path: "/repo/.ggrc.json", Err: errors.New("bad json")}
	r := &Resolver{Grammar: newGrammar("run"), Configs: &fakeLoader{err: loadErr}, WorkDir: "/repo"}

	_, err := r.Resolve(context.Background(), []string{"build"})
	if !errors.Is(err, ErrUnknownSubcommand) {
		t.Errorf("Resolve() error = %v, want ErrUnknownSubcommand", err)
	}
	if errors.Is(err, config.ErrInvalidConfig) {
		t.Error("load failure leaked into the resolution error")
	}
	if !strings.Contains(buf.String(), "failed to load configuration") {
		t.Errorf("warning not logged, got %q", buf.String())
	}
}

func TestResolver_Resolve_SingleShot(t *testing.T) {
	t.Parallel()

	loader := scriptsLoader("build")
	r := &Resolver{Grammar: alwaysUnknown{}, Configs: loader, WorkDir: "/repo"}

	_, err := r.Resolve(context.Background(), []string{"build"})
	if !errors.Is(err, ErrFallbackDidNotResolve) {
		t.Fatalf("Resolve() error = %v, want ErrFallbackDidNotResolve", err)
	}
	if len(loader.dirs) != 1 {
		t.Errorf("configuration loaded %d times, want 1", len(loader.dirs))
	}
}

func TestResolver_Resolve_GrammarCalls(t *testing.T) {
	t.Parallel()

	g := newGrammar("run")
	r := &Resolver{Grammar: g, Configs: scriptsLoader("build"), WorkDir: "/repo"}

	if _, err := r.Resolve(context.Background(), []string{"build", "x"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := [][]string{{"build", "x"}, {"run", "build", "x"}}
	if diff := cmp.Diff(want, g.calls); diff != "" {
		t.Errorf("grammar calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	tests := map[Phase]string{
		PhaseStrict:   "strict",
		PhaseFallback: "fallback",
		Phase(9):      "Phase(9)",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(phase), got, want)
		}
	}
}
