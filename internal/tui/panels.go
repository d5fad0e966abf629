package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuya/fastdata/internal/content"
	"github.com/tuya/fastdata/internal/upload"
)

// renderSectionPanel renders the active section's panel.
func (m *DashboardModel) renderSectionPanel(width, height int) string {
	style := sectionStyle.Width(width - 2).Height(height - 2)
	if m.activeSection == SectionContent {
		style = activeSectionStyle.Width(width - 2).Height(height - 2)
	}
	innerWidth := width - 4
	innerHeight := height - 2

	p := m.shell.Content.Panel()
	heading := p.Heading
	if p.Icon != "" {
		heading = p.Icon + " " + heading
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		chartTitleStyle.Render(heading),
		helpStyle.Render(p.Subtitle),
		"",
	)
	bodyHeight := max(1, innerHeight-lipgloss.Height(header))

	var body string
	switch p.Kind {
	case content.KindIndicator:
		body = renderIndicator(p.Title, innerWidth, bodyHeight)
	case content.KindDatasetChart:
		body = m.renderDatasetChart(innerWidth, bodyHeight)
	case content.KindUpload:
		body = m.renderUploadPanel(innerWidth)
	case content.KindSettings:
		body = m.renderSettings(innerWidth)
	default:
		body = ""
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// renderIndicator draws the placeholder frame where a section's visual
// indicator goes.
func renderIndicator(title string, width, height int) string {
	h := min(7, height)
	if h < 3 {
		return helpStyle.Render(title)
	}
	box := lipgloss.NewStyle().
		Width(max(10, width-2)).
		Height(h-2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(ColorGray).
		Render("▁▂▃▅▆▇ " + title)
	return box
}

// renderUploadPanel renders the file selection, the send control and the
// last outcome of the upload flow.
func (m *DashboardModel) renderUploadPanel(width int) string {
	flow := m.currentFlow()
	if flow == nil {
		return helpStyle.Render("Upload unavailable")
	}
	label := lipgloss.NewStyle().Foreground(ColorGray)

	var lines []string
	if fi, ok := flow.File(); ok {
		lines = append(lines, label.Render("File:  ")+fmt.Sprintf("%s (%s)", fi.Name, fi.SizeKB()))
	} else {
		lines = append(lines, label.Render("File:  ")+"No file selected")
	}
	lines = append(lines, label.Render("State: ")+stateLabel(flow.State()), "")

	send := "[u] Send"
	switch {
	case flow.State() == upload.Uploading:
		send = spinnerFrame() + " Sending..."
	case !flow.CanSubmit():
		send = lipgloss.NewStyle().Foreground(ColorGray).Faint(true).Render(send)
	default:
		send = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true).Render(send)
	}
	lines = append(lines, "[o] Choose file   "+send+"   [x] Clear", "")

	if resp, ok := flow.ResponsePanel(); ok {
		lines = append(lines, renderResponsePanel(resp, width))
	}
	if msg, ok := flow.ErrorPanel(); ok {
		lines = append(lines, lipgloss.NewStyle().
			Width(max(10, width-2)).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorRed).
			Foreground(ColorRed).
			Render("Error: "+msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func stateLabel(s upload.State) string {
	style := lipgloss.NewStyle()
	switch s {
	case upload.Success:
		style = style.Foreground(ColorGreen)
	case upload.Failure:
		style = style.Foreground(ColorRed)
	case upload.Uploading:
		style = style.Foreground(ColorYellow)
	case upload.FileSelectedValid:
		style = style.Foreground(ColorBlue)
	default:
		style = style.Foreground(ColorGray)
	}
	return style.Render(s.String())
}

// renderResponsePanel shows what was sent and what the backend answered.
func renderResponsePanel(resp upload.Response, width int) string {
	label := lipgloss.NewStyle().Foreground(ColorGray)
	lines := []string{
		lipgloss.NewStyle().Foreground(ColorGreen).Bold(true).Render("Backend response"),
		label.Render("Name:   ") + resp.File.Name,
		label.Render("Size:   ") + resp.File.SizeKB(),
		label.Render("Type:   ") + resp.File.TypeLabel(),
		label.Render("Status: ") + fmt.Sprintf("%d", resp.Status),
		"",
	}
	pretty := strings.Split(resp.Pretty, "\n")
	if len(pretty) > 12 {
		pretty = append(pretty[:12], "…")
	}
	lines = append(lines, pretty...)

	return lipgloss.NewStyle().
		Width(max(10, width-2)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGreen).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderSettings lists session info and the effective configuration.
func (m *DashboardModel) renderSettings(width int) string {
	info := m.shell.Info()
	rows := []SettingRow{
		{Label: "Application", Value: info.Name + " " + info.Version},
		{Label: "Current section", Value: info.CurrentSection},
		{Label: "Sidebar collapsed", Value: fmt.Sprintf("%t", info.SidebarCollapsed)},
		{Label: "Location", Value: info.Location},
		{Label: "Search", Value: string(m.shell.Navbar.Mode())},
		{Label: "Datasets loaded", Value: fmt.Sprintf("%d", m.shell.Navbar.Index().Len())},
	}
	rows = append(rows, m.settings...)

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	label := lipgloss.NewStyle().Foreground(ColorGray).Width(labelWidth + 2)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(label.Render(r.Label)+r.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
