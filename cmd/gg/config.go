// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/ggtools/gg/internal/config"
)

const (
	formatJSON = "json"
	formatTOML = "toml"
)

// errUnsupportedFormat is returned by dumpConfig for an unknown --format.
var errUnsupportedFormat = errors.New("unsupported format")

// dumpDocument is the normalized configuration printed by `gg config dump`.
// Every script is in scalar form with its effective base command.
type dumpDocument struct {
	Version string            `json:"gg,omitempty" toml:"gg,omitempty"`
	Scripts map[string]string `json:"scripts" toml:"scripts"`
}

// newConfigCommand creates the `gg config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the repository configuration",
		Long: `Inspect the repository configuration.

The configuration is the first of .ggrc.json, .gg.json and gg.config.json
found in the repository root (or in the current directory outside a
repository).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the configuration file and its scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return classifyError(err)
			}
			showConfig(cmd.OutOrStdout(), loaded)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path (nothing when none exists)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return classifyError(err)
			}
			if loaded != nil {
				fmt.Fprintln(cmd.OutOrStdout(), loaded.Path)
			}
			return nil
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the normalized configuration as JSON or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return classifyError(err)
			}
			if err := dumpConfig(cmd.OutOrStdout(), loaded.ConfigOrDefault(), format); err != nil {
				return newServiceError(err, 0)
			}
			return nil
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", formatJSON, "output format (json, toml)")
	_ = dumpCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatJSON, formatTOML}, cobra.ShellCompDirectiveNoFileComp))
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(w io.Writer, loaded *config.LoadedConfig) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Configuration"))
	fmt.Fprintln(w)

	if loaded == nil {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("file"), SubtitleStyle.Render("(none found)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("file"), loaded.Path)
	}

	cfg := loaded.ConfigOrDefault()
	if cfg.Version == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("gg"), SubtitleStyle.Render("(any)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("gg"), valueStyle.Render(cfg.Version))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("scripts"))

	names := cfg.Scripts.Keys()
	if len(names) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
		return
	}

	width := 0
	for _, name := range names {
		width = max(width, lipgloss.Width(name))
	}
	for _, name := range names {
		def := cfg.Scripts[name]
		command := valueStyle.Render(def.BaseCommand(name))
		if def.Command() == "" {
			command += " " + SubtitleStyle.Render("(structured)")
		}
		padding := strings.Repeat(" ", width-lipgloss.Width(name))
		fmt.Fprintf(w, "  %s%s  %s\n", CmdStyle.Render(name), padding, command)
	}
}

func dumpConfig(w io.Writer, cfg *config.Config, format string) error {
	doc := dumpDocument{
		Version: cfg.Version,
		Scripts: make(map[string]string, len(cfg.Scripts)),
	}
	for name, def := range cfg.Scripts {
		doc.Scripts[name] = def.BaseCommand(name)
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w %q (expected %s or %s)", errUnsupportedFormat, format, formatJSON, formatTOML)
	}
}
