package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/sidebar"
	"github.com/tuya/fastdata/internal/upload"
)

// handleKeyPress dispatches key events: modal stack first, then inline
// handlers (search input), then global dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	// Inline handlers (search input).
	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			handled, cmd := entry.handler.HandleKey(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts.
// Only reached when no modal is on the stack and the search box is idle.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Escape):
		if m.shell.Navbar.Panel().Visible() || m.searchInput.Value() != "" {
			m.closeSearch()
		}
		return m, nil

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m))
		return m, nil

	case key.Matches(msg, k.Search):
		m.openSearch()
		return m, textinputBlink()

	case key.Matches(msg, k.ToggleSidebar):
		m.shell.Sidebar.Toggle()
		return m, nil

	case key.Matches(msg, k.Reload):
		return m, m.reload()

	case key.Matches(msg, k.ReloadHint):
		m.shell.Notifier.Info("Use ctrl+r to reload")
		return m, nil

	case key.Matches(msg, k.DismissAll):
		m.shell.Notifier.DismissAll()
		return m, nil

	case key.Matches(msg, k.NextSection):
		m.nextSection()
		return m, nil

	case key.Matches(msg, k.PrevSection):
		m.prevSectionFocus()
		return m, nil
	}

	if m.activeSection == SectionContent {
		if handled, cmd := m.handleContentKeys(msg); handled {
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, k.Up):
		m.moveSelection(-1)
	case key.Matches(msg, k.Down):
		m.moveSelection(1)
	case key.Matches(msg, k.Home):
		m.sidebarCursor = 0
		m.activateSidebarCursor()
	case key.Matches(msg, k.End):
		m.sidebarCursor = len(m.shell.Sidebar.Items()) - 1
		m.activateSidebarCursor()
	case key.Matches(msg, k.Enter):
		if m.shell.Navbar.Panel().Visible() && m.resultCursor >= 0 {
			m.selectResult(m.resultCursor)
			return m, nil
		}
		if m.activeSection == SectionSidebar {
			m.activateSidebarCursor()
			m.focus(SectionContent)
		}
	}
	return m, nil
}

// handleContentKeys handles keys for the visible section's behaviour.
func (m *DashboardModel) handleContentKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	flow := m.currentFlow()
	if flow == nil {
		return false, nil
	}
	k := m.keys

	switch {
	case key.Matches(msg, k.PickFile):
		picker := NewFilePickerModal(m, flow)
		m.PushModal(picker)
		return true, picker.Init()

	case key.Matches(msg, k.ClearFile):
		flow.ClearSelection()
		return true, nil

	case key.Matches(msg, k.Submit), key.Matches(msg, k.Enter):
		return true, m.submitUpload(flow)
	}
	return false, nil
}

// submitUpload starts the request for flow if its guard allows it.
func (m *DashboardModel) submitUpload(flow *upload.Flow) tea.Cmd {
	if m.uploader == nil {
		m.shell.Notifier.Danger("Upload endpoint not configured")
		return nil
	}
	fi, err := flow.Begin()
	if err != nil {
		if !errors.Is(err, upload.ErrNoFile) {
			m.log.Debug("upload refused", zap.Error(err))
		}
		return nil
	}
	m.uploadsPending++
	return tea.Batch(m.uploadCmd(flow, fi), m.startSpinnerIfNeeded())
}

// reload re-renders the current section and fetches search data again.
func (m *DashboardModel) reload() tea.Cmd {
	current := m.shell.Sidebar.Current()
	if !m.shell.Sidebar.SetActive(current, sidebar.Notify) {
		m.shell.Sidebar.Navigate(current)
	}
	m.searchLoading = true
	m.shell.Notifier.Info("Reloading...")
	return tea.Batch(m.loadSearchDataCmd(), m.healthCmd(), m.startSpinnerIfNeeded())
}

// nextSection cycles focus sidebar -> content -> search.
func (m *DashboardModel) nextSection() {
	switch m.activeSection {
	case SectionSidebar:
		m.focus(SectionContent)
	case SectionContent:
		m.openSearch()
	default:
		m.focus(SectionSidebar)
	}
}

// prevSectionFocus cycles focus backwards.
func (m *DashboardModel) prevSectionFocus() {
	switch m.activeSection {
	case SectionContent:
		m.focus(SectionSidebar)
	case SectionSidebar:
		m.openSearch()
	default:
		m.focus(SectionContent)
	}
}

// openSearch focuses the navbar search box.
func (m *DashboardModel) openSearch() {
	m.focus(SectionSearch)
	m.searchActive = true
	m.searchInput.Focus()
}

// closeSearch removes the results panel and clears the box.
func (m *DashboardModel) closeSearch() {
	m.shell.Navbar.Close()
	m.debounce.Cancel()
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.searchActive = false
	m.resultCursor = -1
	if m.activeSection == SectionSearch {
		m.activeSection = m.prevSection
		if m.activeSection == SectionSearch {
			m.activeSection = SectionSidebar
		}
	}
}
