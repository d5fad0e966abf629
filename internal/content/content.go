// Package content maps section ids to the panel shown in the main area.
package content

import (
	"fmt"

	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/upload"
)

// Kind tells the renderer which body to draw under a panel header.
type Kind int

const (
	// KindIndicator is a placeholder indicator area.
	KindIndicator Kind = iota
	// KindDatasetChart draws records per search dataset.
	KindDatasetChart
	// KindUpload hosts the upload flow.
	KindUpload
	// KindSettings lists preferences and runtime info.
	KindSettings
	// KindFallback is used for unknown ids.
	KindFallback
)

// Panel is the static template of a section.
type Panel struct {
	SectionID string
	Title     string
	Icon      string
	Heading   string
	Subtitle  string
	Kind      Kind
}

// Binding carries section-specific behaviour for one render.
type Binding struct {
	Upload *upload.Flow
}

var templates = map[string]Panel{
	"balances": {
		Title: "Saldos", Icon: "◔", Kind: KindIndicator,
		Heading: "Saldos indicator", Subtitle: "The visual indicator will appear here",
	},
	"sales": {
		Title: "Ventas", Icon: "↗", Kind: KindIndicator,
		Heading: "Ventas indicator", Subtitle: "The visual indicator will appear here",
	},
	"inventory": {
		Title: "Inventario", Icon: "▦", Kind: KindIndicator,
		Heading: "Inventario indicator", Subtitle: "The visual indicator will appear here",
	},
	"customers": {
		Title: "Clientes", Icon: "☺", Kind: KindIndicator,
		Heading: "Clientes indicator", Subtitle: "The visual indicator will appear here",
	},
	"reports": {
		Title: "Reportes", Icon: "≡", Kind: KindDatasetChart,
		Heading: "Reportes indicator", Subtitle: "Records available per dataset",
	},
	"test": {
		Title: "Test", Icon: "⚗", Kind: KindUpload,
		Heading: "Select Excel file", Subtitle: "Supported formats: .xlsx, .xls, .csv",
	},
	"settings": {
		Title: "Configuración", Icon: "⚙", Kind: KindSettings,
		Heading: "Configuración", Subtitle: "Preferences and runtime information",
	},
}

// Renderer resolves panels and remembers the section last rendered.
type Renderer struct {
	notify  model.Notifier
	current string
	binding Binding
}

// NewRenderer returns a renderer. n is handed to section behaviours.
func NewRenderer(n model.Notifier) *Renderer {
	return &Renderer{notify: n}
}

// Template returns the static panel for id, or the fallback for unknown ids.
func Template(id string) Panel {
	if p, ok := templates[id]; ok {
		p.SectionID = id
		return p
	}
	return Panel{
		SectionID: id,
		Title:     id,
		Icon:      "?",
		Heading:   fmt.Sprintf("Section %s", id),
		Subtitle:  "Content not available",
		Kind:      KindFallback,
	}
}

// Render swaps in the panel for id and re-binds its behaviour.
func (r *Renderer) Render(id string) Panel {
	p := Template(id)
	r.current = id
	r.binding = r.Bind(id)
	return p
}

// Bind builds fresh section behaviour. Only the upload section has any.
func (r *Renderer) Bind(id string) Binding {
	if Template(id).Kind == KindUpload {
		return Binding{Upload: upload.NewFlow(r.notify)}
	}
	return Binding{}
}

// Current returns the id last rendered, empty before the first render.
func (r *Renderer) Current() string { return r.current }

// Panel returns the template of the current section.
func (r *Renderer) Panel() Panel { return Template(r.current) }

// Binding returns the behaviour bound by the last Render.
func (r *Renderer) Binding() Binding { return r.binding }

// IsLoaded reports whether id is the section on screen.
func (r *Renderer) IsLoaded(id string) bool { return r.current == id && id != "" }
