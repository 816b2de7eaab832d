// Package tuistyles holds the lipgloss palette shared by the TUI and its components
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#2E7D32")
	ColorAccent  = lipgloss.Color("#F9A825")
	ColorSuccess = lipgloss.Color("#43A047")
	ColorDanger  = lipgloss.Color("#E53935")
	ColorWarning = lipgloss.Color("#FB8C00")
	ColorInfo    = lipgloss.Color("#1E88E5")
	ColorMuted   = lipgloss.Color("#8A8A8A")
	ColorBorder  = lipgloss.Color("#5C6370")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(ColorPrimary).
			Underline(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	LogInfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	LogWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	LogManualStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// ToneStyle picks the value style for a signed metric
func ToneStyle(tone int) lipgloss.Style {
	switch {
	case tone > 0:
		return MetricPositiveStyle
	case tone < 0:
		return MetricNegativeStyle
	default:
		return MetricValueStyle
	}
}
