// Package app is the composition root: it builds every controller, wires
// the section-changed relay and exposes the maintenance helpers used by
// the CLI.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/content"
	"github.com/tuya/fastdata/internal/events"
	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/navbar"
	"github.com/tuya/fastdata/internal/notify"
	"github.com/tuya/fastdata/internal/prefs"
	"github.com/tuya/fastdata/internal/registry"
	"github.com/tuya/fastdata/internal/searchdata"
	"github.com/tuya/fastdata/internal/sidebar"
)

// Deps are the collaborators injected into New.
type Deps struct {
	Registry   *registry.Registry
	Prefs      *prefs.Store
	Notifier   *notify.Notifier
	Loader     *searchdata.Loader
	SearchMode navbar.SearchMode
	Log        *zap.Logger
	Now        func() time.Time
}

// App owns the controllers of one dashboard session.
type App struct {
	reg    *registry.Registry
	prefs  *prefs.Store
	loader *searchdata.Loader
	log    *zap.Logger
	now    func() time.Time

	Bus      *events.Bus
	Notifier *notify.Notifier
	Sidebar  *sidebar.Controller
	Navbar   *navbar.Controller
	Content  *content.Renderer
	Location *Location

	initialized bool
	unsubscribe func()
}

// New builds the controllers. Registry and Prefs are required.
func New(d Deps) (*App, error) {
	if d.Registry == nil {
		return nil, errors.New("app: registry is required")
	}
	if d.Prefs == nil {
		return nil, errors.New("app: preference store is required")
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Notifier == nil {
		d.Notifier = notify.New(notify.ModeReplace, model.DefaultNotifyDuration)
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	bus := events.NewBus()
	a := &App{
		reg:      d.Registry,
		prefs:    d.Prefs,
		loader:   d.Loader,
		log:      d.Log,
		now:      d.Now,
		Bus:      bus,
		Notifier: d.Notifier,
		Location: &Location{},
	}
	a.Sidebar = sidebar.New(d.Registry, d.Prefs, bus, d.Log.Named("sidebar"))
	a.Navbar = navbar.New(d.SearchMode, d.Registry, bus, d.Notifier, d.Log.Named("navbar"))
	a.Content = content.NewRenderer(d.Notifier)
	return a, nil
}

// Start restores the persisted section, renders it and greets the user.
// Search data is loaded separately through LoadSearchData.
func (a *App) Start() {
	if a.initialized {
		return
	}
	a.unsubscribe = a.Bus.Subscribe(a.relay)

	st := a.Sidebar.Init()
	if !a.Sidebar.SetActive(st.CurrentSectionID, sidebar.Notify) {
		// A persisted id that is no longer registered still renders its
		// fallback panel.
		a.relay(model.SectionChanged{SectionID: st.CurrentSectionID, Section: a.reg.Resolve(st.CurrentSectionID)})
	}

	a.initialized = true
	a.Notifier.Show(notify.LevelSuccess, "Welcome to "+model.AppName+"!", model.DefaultWelcomeTimeout)
	a.log.Info("dashboard started",
		zap.String("section", a.Sidebar.Current()),
		zap.Bool("collapsed", a.Sidebar.Collapsed()))
}

// Stop detaches the relay.
func (a *App) Stop() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.initialized = false
}

func (a *App) relay(ev model.SectionChanged) {
	a.Navbar.SetTitle(a.reg.Title(ev.SectionID))
	a.Content.Render(ev.SectionID)
	if a.Sidebar.Current() != ev.SectionID {
		a.Sidebar.SetActive(ev.SectionID, sidebar.Silent)
	}
	a.Location.Replace(ev.SectionID)
	a.log.Debug("section changed", zap.String("section", ev.SectionID), zap.Bool("known", ev.Section.Known()))
}

// LoadSearchData fetches the search datasets. It touches no controller
// state and may run off the UI loop; hand the result to InstallSearchData.
func (a *App) LoadSearchData(ctx context.Context) *searchdata.Index {
	if a.loader == nil {
		return searchdata.NewIndex(nil)
	}
	return a.loader.Load(ctx)
}

// InstallSearchData makes ix searchable from the navbar.
func (a *App) InstallSearchData(ix *searchdata.Index) {
	a.Navbar.SetIndex(ix)
}

// Info summarises the session.
type Info struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Initialized      bool   `json:"initialized"`
	CurrentSection   string `json:"currentSection"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	Location         string `json:"location"`
}

// Info returns the current session summary.
func (a *App) Info() Info {
	return Info{
		Name:             model.AppName,
		Version:          model.AppVersion,
		Initialized:      a.initialized,
		CurrentSection:   a.Sidebar.Current(),
		SidebarCollapsed: a.Sidebar.Collapsed(),
		Location:         a.Location.String(),
	}
}

// ExportSettings is the settings block of an export document.
type ExportSettings struct {
	SidebarCollapsed *bool          `json:"sidebarCollapsed,omitempty"`
	CurrentSection   sectionRefJSON `json:"currentSection,omitempty"`
}

// ExportDoc is the document written by Export and read by Import.
type ExportDoc struct {
	Settings   *ExportSettings `json:"settings,omitempty"`
	ExportDate string          `json:"exportDate,omitempty"`
}

// sectionRefJSON accepts either "sales" or {"id": "sales"}.
type sectionRefJSON string

func (s *sectionRefJSON) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*s = sectionRefJSON(id)
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("currentSection: %w", err)
	}
	*s = sectionRefJSON(obj.ID)
	return nil
}

// Export serialises the persisted settings as indented JSON. It reads
// the preference store so it also works before Start.
func (a *App) Export() ([]byte, error) {
	st := a.prefs.LoadNavigation(a.reg.First().ID)
	collapsed := st.Collapsed
	doc := ExportDoc{
		Settings: &ExportSettings{
			SidebarCollapsed: &collapsed,
			CurrentSection:   sectionRefJSON(st.CurrentSectionID),
		},
		ExportDate: a.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// Import writes the settings of an export document into the preference
// store. Changes apply on the next Start.
func (a *App) Import(data []byte) error {
	var doc ExportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		a.Notifier.Danger("Import failed: invalid data")
		return fmt.Errorf("decoding import: %w", err)
	}
	if doc.Settings != nil {
		if doc.Settings.SidebarCollapsed != nil {
			a.prefs.Set(model.PrefSidebarCollapsed, *doc.Settings.SidebarCollapsed)
		}
		if doc.Settings.CurrentSection != "" {
			a.prefs.Set(model.PrefCurrentSection, string(doc.Settings.CurrentSection))
		}
	}
	a.Notifier.Success("Data imported successfully")
	return nil
}

// Reset clears every stored preference. The running session keeps its
// in-memory state until the next Start.
func (a *App) Reset() {
	a.prefs.Clear()
	a.Notifier.Info("Preferences cleared")
	a.log.Info("preferences reset")
}
