// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the logger installed as the slog default. Library
// packages log through slog; only warnings are shown unless verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix: "gg",
		Level:  level,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = WarningStyle.SetString("WARNING")
	styles.Levels[log.ErrorLevel] = ErrorStyle.SetString("ERROR")
	logger.SetStyles(styles)

	return logger
}
