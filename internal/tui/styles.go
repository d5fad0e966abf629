package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tuya/fastdata/internal/notify"
)

var (
	ColorNavy   = lipgloss.Color("17")
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("244")
	ColorWhite  = lipgloss.Color("255")
	ColorGreen  = lipgloss.Color("42")
	ColorYellow = lipgloss.Color("220")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
)

// levelColor maps a notification level to its accent color.
func levelColor(level notify.Level) lipgloss.Color {
	switch level {
	case notify.LevelSuccess:
		return ColorGreen
	case notify.LevelWarning:
		return ColorOrange
	case notify.LevelDanger:
		return ColorRed
	default:
		return ColorBlue
	}
}

// levelIcon returns the glyph shown before a notification.
func levelIcon(level notify.Level) string {
	switch level {
	case notify.LevelSuccess:
		return "✔"
	case notify.LevelWarning:
		return "⚠"
	case notify.LevelDanger:
		return "✖"
	default:
		return "ℹ"
	}
}

var sectionStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(ColorGray).
	Padding(0, 1)

var activeSectionStyle = sectionStyle.BorderForeground(ColorBlue)

var chartTitleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)

var helpStyle = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
