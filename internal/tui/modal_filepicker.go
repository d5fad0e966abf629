package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuya/fastdata/internal/upload"
)

// FilePickerModal browses the filesystem and hands the chosen file to an
// upload flow. Files outside the allow-list are shown but disabled.
type FilePickerModal struct {
	picker filepicker.Model
	flow   *upload.Flow
}

func NewFilePickerModal(m *DashboardModel, flow *upload.Flow) *FilePickerModal {
	fp := filepicker.New()
	fp.AllowedTypes = append([]string(nil), upload.AllowedExtensions...)
	fp.AutoHeight = true
	fp.ShowHidden = false
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	if m.width > 0 && m.height > 0 {
		fp, _ = fp.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 6})
	}
	return &FilePickerModal{picker: fp, flow: flow}
}

func (p *FilePickerModal) ID() string { return "filepicker" }

// Init reads the starting directory.
func (p *FilePickerModal) Init() tea.Cmd { return p.picker.Init() }

func (p *FilePickerModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "escape", "esc", "q":
			return true, nil
		}
	case tea.WindowSizeMsg:
		msg.Height -= 6
		var cmd tea.Cmd
		p.picker, cmd = p.picker.Update(msg)
		return false, cmd
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)

	if ok, path := p.picker.DidSelectFile(msg); ok {
		_ = p.flow.SelectPath(path) // the flow notifies on rejection
		return true, cmd
	}
	if ok, path := p.picker.DidSelectDisabledFile(msg); ok {
		_ = p.flow.SelectPath(path)
		return false, cmd
	}
	return false, cmd
}

func (p *FilePickerModal) View(width, height int) string {
	header := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render("Select Excel file")
	dir := lipgloss.NewStyle().Foreground(ColorGray).Render(p.picker.CurrentDirectory)
	status := renderModalStatusBar("↑↓: Move", "→/enter: Open", "←: Up", "ESC: Cancel")

	body := lipgloss.JoinVertical(lipgloss.Left, header, dir, "", p.picker.View(), "", status)
	box := lipgloss.NewStyle().
		Width(max(20, width-8)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
