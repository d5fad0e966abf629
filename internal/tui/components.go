package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	w := m.width
	veryNarrow := w < 60
	narrow := w < 80
	medium := w < 120

	// Left: focused area and current section.
	var leftText string
	area := map[Section]string{
		SectionSidebar: "Sidebar",
		SectionContent: "Content",
		SectionSearch:  "Search",
	}[m.activeSection]
	if veryNarrow {
		leftText = area
	} else {
		leftText = fmt.Sprintf("[%s/%s]", area, m.shell.Sidebar.Current())
	}

	// Center: help text adjusted to the width.
	var statusText string
	switch {
	case m.searchActive:
		if narrow {
			statusText = "Type • ESC: Close"
		} else {
			statusText = "Type to search • ↑↓: Select • Enter: Open • ESC: Close"
		}
	case m.activeSection == SectionContent && m.currentFlow() != nil:
		if narrow {
			statusText = "o: File • u: Send • x: Clear"
		} else {
			statusText = "o: Choose file • u/Enter: Send • x: Clear • Tab: Navigate • ?: Help"
		}
	case veryNarrow:
		statusText = "Tab • / • ? • q"
	case narrow:
		statusText = "?: Help • Tab: Nav • /: Search • q: Quit"
	case medium:
		statusText = "?: Help • Tab: Navigate • /: Search • ctrl+b: Sidebar • q: Quit"
	default:
		statusText = "?: Help • Click sections • Tab: Navigate • /: Search • ctrl+b: Sidebar • ctrl+r: Reload • q: Quit"
	}

	// Right: loading spinner and backend reachability.
	var rightParts []string
	if m.anyLoading() {
		rightParts = append(rightParts, baseStyle.Render(spinnerFrame()))
	}
	if m.health != nil && !veryNarrow {
		rightParts = append(rightParts, m.renderBackendDot())
	}
	rightText := strings.Join(rightParts, " ")

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2
	if leftWidth+rightWidth >= w {
		if w < 20 {
			return baseStyle.Width(w).Render(leftText)
		}
		leftWidth = min(10, w/3)
		rightWidth = min(15, w/3)
	}
	centerWidth := max(0, w-leftWidth-rightWidth)

	if lipgloss.Width(leftText) > leftWidth {
		leftText = runewidth.Truncate(leftText, max(0, leftWidth-1), "")
	}
	if lipgloss.Width(statusText) > centerWidth {
		statusText = ""
	}

	leftPart := baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(leftText)
	centerPart := baseStyle.Align(lipgloss.Center).Width(centerWidth).Render(statusText)
	rightPart := baseStyle.Align(lipgloss.Right).Width(rightWidth).Render(rightText)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPart, centerPart, rightPart)
}

// renderBackendDot renders the backend indicator.
func (m *DashboardModel) renderBackendDot() string {
	var color lipgloss.Color
	label := "backend"
	switch m.backend {
	case BackendUp:
		color = ColorGreen
	case BackendDown:
		color = ColorRed
		label = "backend down"
	default:
		color = ColorYellow
	}
	dot := lipgloss.NewStyle().Background(ColorNavy).Foreground(color).Render("●")
	return dot + lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite).Render(" "+label)
}
