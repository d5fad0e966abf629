package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI.
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
}

// DashboardPage adapts DashboardModel to the Page interface.
type DashboardPage struct {
	m *DashboardModel
}

// NewDashboardPage wraps m.
func NewDashboardPage(m *DashboardModel) *DashboardPage {
	return &DashboardPage{m: m}
}

func (p *DashboardPage) ID() string { return "dashboard" }

func (p *DashboardPage) Init() tea.Cmd { return p.m.Init() }

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.m.Update(msg)
	return cmd, nil
}

func (p *DashboardPage) View(width, height int) string {
	if width > 0 && height > 0 && (p.m.width != width || p.m.height != height) {
		p.m.resize(width, height)
	}
	return p.m.View()
}
