// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output. The colors are picked for dark
// terminal backgrounds.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and placeholder values.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for configured values.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for script names and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and placeholders.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for configured values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for the "Error:" prefix of application errors.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for the "WARN" level of the logger.
	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	// CmdStyle is for script names and command lines.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
