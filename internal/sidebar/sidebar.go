// Package sidebar owns the navigation state: which section is active and
// whether the sidebar is collapsed.
package sidebar

import (
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/prefs"
	"github.com/tuya/fastdata/internal/registry"
)

// Breakpoint is the terminal width below which the sidebar behaves as an
// overlay that closes on outside clicks.
const Breakpoint = 80

// Mode selects whether SetActive publishes a SectionChanged signal.
type Mode int

const (
	// Silent updates state and persistence only. Used when relaying a
	// change that was already published elsewhere.
	Silent Mode = iota
	// Notify also publishes, like Navigate.
	Notify
)

// NavItem is one row of the rendered sidebar.
type NavItem struct {
	Section model.SectionDescriptor
	Active  bool
}

// Controller is the sidebar state machine. All methods run on the UI loop.
type Controller struct {
	reg   *registry.Registry
	prefs *prefs.Store
	pub   model.Publisher
	log   *zap.Logger

	state model.NavigationState
	width int
}

// New returns a controller in the default state; call Init to restore
// the persisted one.
func New(reg *registry.Registry, store *prefs.Store, pub model.Publisher, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		reg:   reg,
		prefs: store,
		pub:   pub,
		log:   log,
		state: model.NavigationState{CurrentSectionID: reg.First().ID},
	}
}

// Init loads persisted state, falling back to defaults. It never fails.
func (c *Controller) Init() model.NavigationState {
	c.state = c.prefs.LoadNavigation(c.reg.First().ID)
	c.log.Debug("sidebar restored",
		zap.String("section", c.state.CurrentSectionID),
		zap.Bool("collapsed", c.state.Collapsed))
	return c.state
}

// Navigate makes id the active section, persists and publishes. Any id is
// accepted; consumers render a fallback for unknown ones.
func (c *Controller) Navigate(id string) {
	c.state.CurrentSectionID = id
	c.save()
	c.publish(id)
}

// SetActive is the programmatic entry point. Unknown ids are ignored and
// reported as false.
func (c *Controller) SetActive(id string, mode Mode) bool {
	if !c.reg.Has(id) {
		return false
	}
	c.state.CurrentSectionID = id
	c.save()
	if mode == Notify {
		c.publish(id)
	}
	return true
}

// Toggle flips the collapsed flag, persists it and returns the new value.
func (c *Controller) Toggle() bool {
	c.state.Collapsed = !c.state.Collapsed
	c.save()
	return c.state.Collapsed
}

// SetCollapsed forces the collapsed flag.
func (c *Controller) SetCollapsed(v bool) {
	if c.state.Collapsed == v {
		return
	}
	c.state.Collapsed = v
	c.save()
}

// State returns a copy of the navigation state.
func (c *Controller) State() model.NavigationState { return c.state }

// Current returns the active section id.
func (c *Controller) Current() string { return c.state.CurrentSectionID }

// Collapsed reports whether the sidebar is collapsed.
func (c *Controller) Collapsed() bool { return c.state.Collapsed }

// Items derives the nav list from state. Exactly one item is active: a
// current id missing from the registry gets a trailing ad-hoc item.
func (c *Controller) Items() []NavItem {
	all := c.reg.All()
	items := make([]NavItem, 0, len(all)+1)
	found := false
	for _, s := range all {
		active := s.ID == c.state.CurrentSectionID
		found = found || active
		items = append(items, NavItem{Section: s, Active: active})
	}
	if !found {
		items = append(items, NavItem{Section: c.reg.Resolve(c.state.CurrentSectionID), Active: true})
	}
	return items
}

// ActiveIndex returns the position of the active item in Items.
func (c *Controller) ActiveIndex() int {
	if i := c.reg.Index(c.state.CurrentSectionID); i >= 0 {
		return i
	}
	return c.reg.Len()
}

// SetViewportWidth records the terminal width for responsive behaviour.
func (c *Controller) SetViewportWidth(w int) { c.width = w }

// Narrow reports whether the viewport is below Breakpoint.
func (c *Controller) Narrow() bool { return c.width > 0 && c.width < Breakpoint }

// CloseIfOutside collapses an open sidebar when, on a narrow viewport, a
// click lands at column x outside a sidebar of the given width. It
// reports whether it collapsed.
func (c *Controller) CloseIfOutside(x, sidebarWidth int) bool {
	if !c.Narrow() || c.state.Collapsed || x < sidebarWidth {
		return false
	}
	c.state.Collapsed = true
	c.save()
	return true
}

func (c *Controller) save() {
	c.prefs.SaveNavigation(c.state)
}

func (c *Controller) publish(id string) {
	if c.pub == nil {
		return
	}
	c.pub.Publish(model.SectionChanged{SectionID: id, Section: c.reg.Resolve(id)})
}
