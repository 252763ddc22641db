// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	app, err := NewApp(Dependencies{
		WorkDir: t.TempDir(),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Roots:   fixedRoot(""),
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return newRootCommand(app)
}

func TestFirstPositional(t *testing.T) {
	t.Parallel()

	flags := newTestRoot(t).LocalFlags()

	tests := []struct {
		name   string
		args   []string
		want   string
		wantOK bool
	}{
		{"empty", nil, "", false},
		{"bare word", []string{"build", "x"}, "build", true},
		{"bool flag first", []string{"-v", "build"}, "build", true},
		{"long bool flag", []string{"--verbose", "build"}, "build", true},
		{"value flag consumes next", []string{"--git", "/usr/bin/git", "build"}, "build", true},
		{"value flag with equals", []string{"--git=/usr/bin/git", "build"}, "build", true},
		{"unknown flag consumes next", []string{"--bogus", "value", "build"}, "build", true},
		{"only flags", []string{"-v"}, "", false},
		{"terminator", []string{"--", "build"}, "", false},
		{"lone dash is positional", []string{"-"}, "-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := firstPositional(tt.args, flags)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("firstPositional(%q) = (%q, %v), want (%q, %v)", tt.args, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCobraGrammar_UnknownSubcommand(t *testing.T) {
	t.Parallel()

	grammar := newCobraGrammar(newTestRoot(t))

	tests := []struct {
		name        string
		args        []string
		wantName    string
		wantUnknown bool
	}{
		{"no arguments", nil, "", false},
		{"run", []string{"run", "build"}, "", false},
		{"config subcommand", []string{"config", "show"}, "", false},
		{"help", []string{"help"}, "", false},
		{"completion", []string{"completion", "bash"}, "", false},
		{"help flag", []string{"--help"}, "", false},
		{"global flag before run", []string{"-v", "run", "build"}, "", false},
		{"unknown word", []string{"build"}, "build", true},
		{"unknown word with args", []string{"test", "--fix", "a"}, "test", true},
		{"unknown word after flag", []string{"-v", "build"}, "build", true},
		{"shell completion request", []string{cobra.ShellCompRequestCmd, "b"}, "", false},
		{"shell completion without descriptions", []string{cobra.ShellCompNoDescRequestCmd, "b"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, unknown := grammar.UnknownSubcommand(tt.args)
			if name != tt.wantName || unknown != tt.wantUnknown {
				t.Errorf("UnknownSubcommand(%q) = (%q, %v), want (%q, %v)",
					tt.args, name, unknown, tt.wantName, tt.wantUnknown)
			}
		})
	}
}
