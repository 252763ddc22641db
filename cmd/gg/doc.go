// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gg.
//
// This package implements the Cobra command hierarchy for the gg CLI: the
// root command with its global flags, the run command that executes
// configured scripts, and the config inspection commands. Arguments whose
// first word is not a subcommand are dispatched to run when they name a
// script (see internal/dispatch).
package cmd
