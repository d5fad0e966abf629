package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var datasetColors = []lipgloss.Color{ColorBlue, ColorGreen, ColorYellow, ColorOrange, ColorRed}

// renderDatasetChart draws one bar per loaded search dataset with a legend.
func (m *DashboardModel) renderDatasetChart(width, height int) string {
	counts := m.shell.Navbar.Index().Counts()
	if len(counts) == 0 {
		if m.searchLoading {
			return renderLoadingPlaceholder("Loading datasets...", width, min(height, 3))
		}
		return helpStyle.Render("No data available")
	}

	legendWidth := 24
	chartHeight := min(10, max(4, height))
	chartWidth := max(10, width-legendWidth-2)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(max(1, min(6, chartWidth/(2*len(counts))))),
		barchart.WithNoAxis(),
	)

	total := 0
	legendLines := make([]string, 0, len(counts)+2)
	for i, c := range counts {
		color := datasetColors[i%len(datasetColors)]
		style := lipgloss.NewStyle().Foreground(color).Background(color)
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: c.ID, Value: float64(c.Records), Style: style},
			},
		})
		total += c.Records

		name := runewidth.Truncate(c.Title, legendWidth-8, "…")
		legendLines = append(legendLines, lipgloss.NewStyle().Foreground(color).
			Render(fmt.Sprintf("%-*s%6d", legendWidth-8, name, c.Records)))
	}
	legendLines = append(legendLines,
		strings.Repeat("─", legendWidth-2),
		fmt.Sprintf("%-*s%6d", legendWidth-8, "TOTAL", total),
	)

	bc.Draw()
	chartLines := strings.Split(bc.View(), "\n")
	for len(chartLines) < chartHeight {
		chartLines = append(chartLines, "")
	}

	combined := make([]string, 0, chartHeight)
	for i := 0; i < chartHeight; i++ {
		line := chartLines[i]
		if w := lipgloss.Width(line); w < chartWidth {
			line += strings.Repeat(" ", chartWidth-w)
		}
		legend := ""
		if i < len(legendLines) {
			legend = legendLines[i]
		}
		combined = append(combined, line+"  "+legend)
	}
	return strings.Join(combined, "\n")
}
