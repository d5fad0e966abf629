package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderNotifications renders visible toasts, newest last, right aligned.
func (m *DashboardModel) renderNotifications(width int) string {
	visible := m.shell.Notifier.Visible()
	if len(visible) == 0 {
		return ""
	}

	toastWidth := min(48, max(20, width-2))
	toasts := make([]string, 0, len(visible))
	for _, n := range visible {
		color := levelColor(n.Level)
		text := runewidth.Truncate(levelIcon(n.Level)+" "+n.Message, toastWidth-4, "…")
		toasts = append(toasts, lipgloss.NewStyle().
			Width(toastWidth-2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Foreground(color).
			Padding(0, 1).
			Render(text))
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Render(lipgloss.JoinVertical(lipgloss.Right, toasts...))
}
