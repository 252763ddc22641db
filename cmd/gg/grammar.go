// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cobraGrammar answers dispatch questions from a Cobra command tree.
type cobraGrammar struct {
	root *cobra.Command
}

func newCobraGrammar(root *cobra.Command) cobraGrammar {
	return cobraGrammar{root: root}
}

// UnknownSubcommand reports the first positional argument when the root
// command does not recognise it as a subcommand. Find only fails in that
// case; flag errors are left to Cobra's own parsing.
func (g cobraGrammar) UnknownSubcommand(args []string) (string, bool) {
	if _, _, err := g.root.Find(args); err == nil {
		return "", false
	}

	name, ok := firstPositional(args, g.root.LocalFlags())
	if !ok {
		return "", false
	}
	// Hidden completion requests are registered by Cobra at execution time.
	if name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd {
		return "", false
	}
	return name, true
}

// firstPositional returns the first argument that is neither a flag nor a
// flag value, skipping values the way Cobra does: a flag that is unknown or
// has no default for its bare form consumes the next argument.
func firstPositional(args []string, flags *pflag.FlagSet) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return "", false
		case strings.HasPrefix(arg, "--"):
			if !strings.Contains(arg, "=") && takesValue(flags.Lookup(arg[2:])) {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			if len(arg) == 2 && takesValue(flags.ShorthandLookup(arg[1:])) {
				i++
			}
		default:
			return arg, true
		}
	}
	return "", false
}

func takesValue(flag *pflag.Flag) bool {
	return flag == nil || flag.NoOptDefVal == ""
}
