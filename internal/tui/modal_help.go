package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal displays the key bindings.
type HelpModal struct {
	ctx      ModalContext
	viewport viewport.Model
	content  string
}

func NewHelpModal(m *DashboardModel) *HelpModal {
	return &HelpModal{
		ctx:      m.modalContext(),
		viewport: viewport.New(80, 20),
		content:  renderHelpContent(m.keys, m.shell.Navbar.Live()),
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		case "?", "q", "escape", "esc":
			return true, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if h.ctx.ReverseScrollWheel {
				h.viewport.ScrollDown(1)
			} else {
				h.viewport.ScrollUp(1)
			}
		case tea.MouseButtonWheelDown:
			if h.ctx.ReverseScrollWheel {
				h.viewport.ScrollUp(1)
			} else {
				h.viewport.ScrollDown(1)
			}
		}
		return false, nil
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return renderSingleModalView(&h.viewport, "Help", h.content, width, height,
		"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "?/ESC: Close")
}

// renderHelpContent lists the bindings grouped by area.
func renderHelpContent(k KeyMap, liveSearch bool) string {
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"GLOBAL", []key.Binding{k.Help, k.Quit, k.ForceQuit, k.Escape, k.ToggleSidebar, k.Reload, k.DismissAll}},
		{"NAVIGATION", []key.Binding{k.NextSection, k.PrevSection, k.Up, k.Down, k.Home, k.End, k.Enter}},
		{"SEARCH", []key.Binding{k.Search}},
		{"UPLOAD (Test section)", []key.Binding{k.PickFile, k.Submit, k.ClearFile}},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("TUYA Fast-Data"))
	b.WriteString("\n\n")
	for _, g := range groups {
		b.WriteString(chartTitleStyle.Render(g.title))
		b.WriteString("\n")
		for _, binding := range g.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString(chartTitleStyle.Render("MOUSE"))
	b.WriteString("\n  Click a section in the sidebar to open it.\n")
	b.WriteString("  Click the top bar to search; click a result to jump to its section.\n")
	b.WriteString("  Clicking the content area closes the sidebar on narrow terminals.\n\n")

	if liveSearch {
		b.WriteString("Search looks through every dataset once you type two characters.\n")
	} else {
		b.WriteString("Global search is not available in this build.\n")
	}
	return b.String()
}
