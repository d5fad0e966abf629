package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Update handles messages. Every pass also schedules expiry timers for
// notifications posted while handling msg.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.update(msg)
	return m, tea.Batch(cmd, m.expiryCmds())
}

func (m *DashboardModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if modal := m.TopModal(); modal != nil {
			_, cmd := modal.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case searchDataLoadedMsg:
		m.searchLoading = false
		m.shell.InstallSearchData(msg.index)
		if m.shell.Navbar.Live() && m.shell.Navbar.Panel().Visible() {
			m.shell.Navbar.Search(m.searchInput.Value())
		}
		return m, nil

	case searchDebounceMsg:
		if !m.debounce.Current(msg.seq) {
			return m, nil
		}
		m.shell.Navbar.Search(m.searchInput.Value())
		m.resultCursor = -1
		return m, nil

	case notifyExpireMsg:
		m.shell.Notifier.Dismiss(msg.id)
		return m, nil

	case uploadDoneMsg:
		if m.uploadsPending > 0 {
			m.uploadsPending--
		}
		msg.flow.Complete(msg.resp, msg.err)
		return m, nil

	case healthMsg:
		m.backendChecked = msg.at
		if msg.err != nil {
			if m.backend != BackendDown {
				m.log.Warn("backend unreachable", zap.Error(msg.err))
			}
			m.backend = BackendDown
		} else {
			m.backend = BackendUp
		}
		return m, m.scheduleHealth()

	case healthTickMsg:
		return m, m.healthCmd()

	case SpinnerTickMsg:
		return m.handleSpinnerTick()
	}

	// Everything else (file picker directory reads, cursor blink) goes to
	// the top modal, then to the focused search input.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}
	if m.searchActive {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize records the terminal size and propagates it to width-aware state.
func (m *DashboardModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.shell.Sidebar.SetViewportWidth(width)
	m.searchInput.Width = max(10, min(40, width/3))
	m.viewStyle = lipgloss.NewStyle().MaxWidth(width).MaxHeight(height)
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.handleMouseClick(msg.X, msg.Y)

	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			m.moveSelection(1)
		} else {
			m.moveSelection(-1)
		}
		return m, nil

	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			m.moveSelection(-1)
		} else {
			m.moveSelection(1)
		}
		return m, nil
	}
	return m, nil
}

// handleMouseClick routes a left click by screen region.
func (m *DashboardModel) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if m.width <= 0 || m.height <= 0 {
		return m, nil
	}

	// Results panel: a click on a match navigates, any other click closes it.
	if m.shell.Navbar.Panel().Visible() {
		if idx, ok := m.resultAtMouse(x, y); ok {
			m.selectResult(idx)
			return m, nil
		}
		if !m.insideResultsPanel(x, y) {
			m.closeSearch()
		}
	}

	if y < navbarHeight {
		m.openSearch()
		return m, textinputBlink()
	}

	sw := m.sidebarWidth()
	if x < sw {
		m.focus(SectionSidebar)
		if idx, ok := m.sidebarCursorAtMouseRow(y); ok {
			m.sidebarCursor = idx
			m.activateSidebarCursor()
		}
		return m, nil
	}

	m.shell.Sidebar.CloseIfOutside(x, sw)
	m.focus(SectionContent)
	return m, nil
}

// moveSelection moves the cursor of the focused area.
func (m *DashboardModel) moveSelection(delta int) {
	if m.shell.Navbar.Panel().Visible() {
		m.moveResultCursor(delta)
		return
	}
	m.moveSidebarCursor(delta)
}
