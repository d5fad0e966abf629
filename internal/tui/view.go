package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 40
	minHeight = 15
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *DashboardModel) contentWidth() int {
	return max(minWidth-collapsedSidebarWidth, m.width-m.sidebarWidth())
}

// bodyHeight is the height between the navbar and the status line.
func (m *DashboardModel) bodyHeight() int {
	return max(3, m.height-navbarHeight-1)
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < minHeight || m.width < minWidth {
		return "Terminal too small. Resize to at least 40x15."
	}

	navbar := m.renderNavbar()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(m.bodyHeight()),
		m.renderContentColumn(m.contentWidth(), m.bodyHeight()),
	)
	statusLine := m.renderStatusLine()

	return m.viewStyle.Render(lipgloss.JoinVertical(lipgloss.Left, navbar, body, statusLine))
}

// renderContentColumn stacks the results panel, the section panel and the
// notifications in the area right of the sidebar.
func (m *DashboardModel) renderContentColumn(width, height int) string {
	var parts []string
	used := 0

	if m.shell.Navbar.Panel().Visible() {
		panel := m.renderResultsPanel(width)
		parts = append(parts, panel)
		used += lipgloss.Height(panel)
	}

	toasts := m.renderNotifications(width)
	toastHeight := 0
	if toasts != "" {
		toastHeight = lipgloss.Height(toasts)
	}

	if remaining := height - used - toastHeight; remaining >= 3 {
		parts = append(parts, m.renderSectionPanel(width, remaining))
	}
	if toasts != "" {
		parts = append(parts, toasts)
	}

	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
