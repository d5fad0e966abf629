package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	sidebarWidth          = 22
	collapsedSidebarWidth = 6
	navbarHeight          = 3
)

// sidebarWidth returns the columns taken by the sidebar in its current state.
func (m *DashboardModel) sidebarWidth() int {
	if m.shell.Sidebar.Collapsed() {
		return collapsedSidebarWidth
	}
	return sidebarWidth
}

func (m *DashboardModel) clampSidebarCursor() {
	n := len(m.shell.Sidebar.Items())
	if n == 0 {
		m.sidebarCursor = 0
		return
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = 0
	}
	if m.sidebarCursor >= n {
		m.sidebarCursor = n - 1
	}
}

// syncSidebarCursor puts the cursor on the active item.
func (m *DashboardModel) syncSidebarCursor() {
	m.sidebarCursor = m.shell.Sidebar.ActiveIndex()
	m.clampSidebarCursor()
}

func (m *DashboardModel) moveSidebarCursor(delta int) {
	m.sidebarCursor += delta
	m.clampSidebarCursor()
}

// activateSidebarCursor navigates to the item under the cursor.
func (m *DashboardModel) activateSidebarCursor() {
	items := m.shell.Sidebar.Items()
	if len(items) == 0 {
		return
	}
	m.clampSidebarCursor()
	m.shell.Sidebar.Navigate(items[m.sidebarCursor].Section.ID)
	m.syncSidebarCursor()
}

// buildSidebarLines renders the nav rows and maps line numbers to item
// indexes for mouse hit testing.
func (m *DashboardModel) buildSidebarLines() ([]string, map[int]int) {
	items := m.shell.Sidebar.Items()
	collapsed := m.shell.Sidebar.Collapsed()
	rowToCursor := make(map[int]int, len(items))
	lines := make([]string, 0, len(items)+2)

	if !collapsed {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Sections"), "")
	}

	for i, it := range items {
		icon := it.Section.Icon
		if icon == "" {
			icon = "•"
		}

		var label string
		if collapsed {
			label = fmt.Sprintf(" %s", icon)
			if it.Active {
				label = fmt.Sprintf(">%s", icon)
			}
		} else {
			title := it.Section.Title
			if title == "" {
				title = it.Section.ID
			}
			label = fmt.Sprintf("  %s %s", icon, title)
			if it.Active {
				label = fmt.Sprintf("> %s %s", icon, title)
			}
			maxLabelWidth := sidebarWidth - 4
			label = runewidth.Truncate(label, maxLabelWidth, "~")
		}

		style := lipgloss.NewStyle()
		if it.Active {
			style = style.Foreground(ColorGreen)
		}
		if m.activeSection == SectionSidebar && m.sidebarCursor == i {
			style = style.Foreground(ColorBlue).Bold(true)
		}

		rowToCursor[len(lines)] = i
		lines = append(lines, style.Render(label))
	}

	return lines, rowToCursor
}

func (m *DashboardModel) sidebarCursorAtMouseRow(y int) (int, bool) {
	_, rowToCursor := m.buildSidebarLines()

	// Row 0 of the sidebar content sits below the navbar and the top border.
	row := y - navbarHeight - 1
	for _, offset := range []int{0, -1, 1} {
		if idx, ok := rowToCursor[row+offset]; ok {
			return idx, true
		}
	}
	return 0, false
}

// renderSidebar renders section navigation in the left column.
func (m *DashboardModel) renderSidebar(height int) string {
	m.clampSidebarCursor()

	style := lipgloss.NewStyle().
		Width(m.sidebarWidth()-2).
		Height(height-2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray)

	if !m.shell.Sidebar.Collapsed() {
		style = style.Padding(0, 1)
	}
	if m.activeSection == SectionSidebar {
		style = style.BorderForeground(ColorBlue)
	}

	lines, _ := m.buildSidebarLines()
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
