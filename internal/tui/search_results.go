package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/navbar"
	"github.com/tuya/fastdata/internal/searchdata"
)

// resultRef addresses one match of the results panel.
type resultRef struct {
	sectionID string
	entry     model.SearchResultEntry
}

// flatResults lists matches in display order.
func (m *DashboardModel) flatResults() []resultRef {
	p := m.shell.Navbar.Panel()
	var refs []resultRef
	for _, g := range p.Groups {
		for _, e := range g.Matches {
			refs = append(refs, resultRef{sectionID: g.SectionID, entry: e})
		}
	}
	return refs
}

func (m *DashboardModel) moveResultCursor(delta int) {
	n := len(m.flatResults())
	if n == 0 {
		m.resultCursor = -1
		return
	}
	m.resultCursor += delta
	if m.resultCursor < -1 {
		m.resultCursor = -1
	}
	if m.resultCursor >= n {
		m.resultCursor = n - 1
	}
}

// selectResult navigates to the dataset of match idx.
func (m *DashboardModel) selectResult(idx int) {
	refs := m.flatResults()
	if idx < 0 || idx >= len(refs) {
		return
	}
	m.shell.Navbar.Select(refs[idx].sectionID)
	m.closeSearch()
	m.syncSidebarCursor()
	m.focus(SectionContent)
}

// buildResultsLines renders the panel body and maps rows to matches.
func (m *DashboardModel) buildResultsLines(width int) ([]string, map[int]int) {
	p := m.shell.Navbar.Panel()
	rowToResult := make(map[int]int)
	var lines []string

	muted := lipgloss.NewStyle().Foreground(ColorGray)
	textWidth := max(10, width-6)

	switch p.Kind {
	case navbar.PanelNoResults:
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Render("⌕ No results"),
			fmt.Sprintf("Nothing matched %q", p.Query),
			"",
			muted.Render("esc: close"),
		)
		return lines, rowToResult

	case navbar.PanelResults:
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Results for %q", p.Query)))
		idx := 0
		for _, g := range p.Groups {
			lines = append(lines, "", lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(g.Title))
			for _, e := range g.Matches {
				q := runewidth.Truncate(e.Question, textWidth, "…")
				a := runewidth.Truncate(searchdata.TruncateAnswer(e.Answer, searchdata.AnswerPreviewLen), textWidth, "…")
				tag := muted.Render(fmt.Sprintf("[%s]", e.MatchType))

				qStyle := lipgloss.NewStyle()
				if idx == m.resultCursor {
					qStyle = qStyle.Foreground(ColorBlue).Bold(true).Reverse(true)
				}
				rowToResult[len(lines)] = idx
				lines = append(lines, "  "+qStyle.Render(q)+" "+tag)
				rowToResult[len(lines)] = idx
				lines = append(lines, "    "+muted.Render(a))
				idx++
			}
		}
		lines = append(lines, "", muted.Render("↑↓: select • enter: open • esc: close"))
	}
	return lines, rowToResult
}

// renderResultsPanel renders the floating panel under the navbar.
func (m *DashboardModel) renderResultsPanel(width int) string {
	lines, _ := m.buildResultsLines(width)
	border := ColorBlue
	if m.shell.Navbar.Panel().Kind == navbar.PanelNoResults {
		border = ColorGray
	}
	return lipgloss.NewStyle().
		Width(width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// resultsPanelHeight returns the rendered height including borders.
func (m *DashboardModel) resultsPanelHeight() int {
	lines, _ := m.buildResultsLines(m.contentWidth())
	return len(lines) + 2
}

func (m *DashboardModel) insideResultsPanel(x, y int) bool {
	return x >= m.sidebarWidth() && y >= navbarHeight && y < navbarHeight+m.resultsPanelHeight()
}

func (m *DashboardModel) resultAtMouse(x, y int) (int, bool) {
	if !m.insideResultsPanel(x, y) {
		return 0, false
	}
	_, rowToResult := m.buildResultsLines(m.contentWidth())
	idx, ok := rowToResult[y-navbarHeight-1]
	return idx, ok
}
