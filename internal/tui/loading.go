package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerFrame is selected based on the current time so it animates on re-render.
func spinnerFrame() string {
	return spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]
}

// renderLoadingPlaceholder renders an animated loading indicator.
func renderLoadingPlaceholder(text string, width, height int) string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		loadingStyle.Render(spinnerFrame()+" "+text))
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

// handleSpinnerTick re-schedules spinner ticks while anything is loading.
func (m *DashboardModel) handleSpinnerTick() (tea.Model, tea.Cmd) {
	return m, m.startSpinnerIfNeeded()
}

// anyLoading reports an upload or a search data fetch in flight.
func (m *DashboardModel) anyLoading() bool {
	return m.uploadsPending > 0 || m.searchLoading
}

// startSpinnerIfNeeded schedules a spinner tick if anything is loading.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.anyLoading() {
		return tea.Tick(120*time.Millisecond, func(_ time.Time) tea.Msg {
			return SpinnerTickMsg{}
		})
	}
	return nil
}
