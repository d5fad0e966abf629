package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderBranding renders the product name on the navy bar.
func renderBranding() string {
	tuya := lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorYellow).Bold(true).Render("TUYA")
	rest := lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite).Bold(true).Render(" Fast-Data")
	return tuya + rest
}

// renderNavbar renders branding, the section title and the search box.
func (m *DashboardModel) renderNavbar() string {
	inner := max(10, m.width-2)

	brand := renderBranding()
	search := m.searchInput.View()
	if !m.searchActive && m.searchInput.Value() == "" {
		search = lipgloss.NewStyle().Foreground(ColorGray).Render("⌕ / to search")
	}

	title := m.shell.Navbar.Title()
	titleWidth := max(0, inner-lipgloss.Width(brand)-lipgloss.Width(search)-4)
	title = runewidth.Truncate(title, titleWidth, "…")
	titleStyled := lipgloss.NewStyle().
		Width(titleWidth).
		Align(lipgloss.Center).
		Bold(true).
		Render(title)

	row := lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", titleStyled, "  ", search)

	border := ColorGray
	if m.activeSection == SectionSearch {
		border = ColorBlue
	}
	return lipgloss.NewStyle().
		Width(inner).
		MaxHeight(navbarHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Render(row)
}
