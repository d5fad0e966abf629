package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type searchInputHandler struct{}

func (h searchInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "escape", "esc":
		m.closeSearch()
		return true, nil
	case "tab":
		m.searchInput.Blur()
		m.searchActive = false
		m.focus(SectionSidebar)
		return true, nil
	case "up":
		m.moveResultCursor(-1)
		return true, nil
	case "down":
		m.moveResultCursor(1)
		return true, nil
	case "enter":
		if m.resultCursor >= 0 && m.shell.Navbar.Panel().Visible() {
			m.selectResult(m.resultCursor)
			return true, nil
		}
		// Enter searches right away and drops any pending debounce.
		m.debounce.Cancel()
		m.shell.Navbar.Search(m.searchInput.Value())
		m.resultCursor = -1
		return true, nil
	default:
		before := m.searchInput.Value()
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		value := m.searchInput.Value()
		if value == before {
			return true, cmd
		}
		m.shell.Navbar.SetInput(value)
		m.resultCursor = -1
		if !m.shell.Navbar.Live() {
			return true, cmd
		}
		return true, tea.Batch(cmd, m.debounceSearchCmd())
	}
}

func (h searchInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return false, nil // clicks fall through to region routing
}

func textinputBlink() tea.Cmd {
	return textinput.Blink
}
