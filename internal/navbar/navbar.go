// Package navbar holds the title slot and the global search box state.
package navbar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/registry"
	"github.com/tuya/fastdata/internal/searchdata"
)

// SearchMode selects the search behaviour.
type SearchMode string

const (
	// SearchLive searches the loaded datasets.
	SearchLive SearchMode = "live"
	// SearchStub only acknowledges the query with a notification.
	SearchStub SearchMode = "stub"
)

// ParseSearchMode validates a configured mode. Empty means live.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(s) {
	case SearchLive, SearchStub:
		return SearchMode(s), nil
	case "":
		return SearchLive, nil
	}
	return "", fmt.Errorf("unknown search mode %q (want live or stub)", s)
}

// PanelKind is the state of the floating results panel.
type PanelKind int

const (
	PanelNone PanelKind = iota
	PanelResults
	PanelNoResults
)

// Panel is the view model of the results panel.
type Panel struct {
	Kind   PanelKind
	Query  string
	Groups []model.SearchResultGroup
}

// Visible reports whether the panel is shown.
func (p Panel) Visible() bool { return p.Kind != PanelNone }

// Controller is the navbar state. All methods run on the UI loop.
type Controller struct {
	mode   SearchMode
	reg    *registry.Registry
	pub    model.Publisher
	notify model.Notifier
	log    *zap.Logger

	title string
	input string
	index *searchdata.Index
	panel Panel
}

// New returns a navbar controller.
func New(mode SearchMode, reg *registry.Registry, pub model.Publisher, notify model.Notifier, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if mode == "" {
		mode = SearchLive
	}
	return &Controller{mode: mode, reg: reg, pub: pub, notify: notify, log: log}
}

// Mode returns the configured search mode.
func (c *Controller) Mode() SearchMode { return c.mode }

// Live reports whether typing should trigger debounced searches.
func (c *Controller) Live() bool { return c.mode == SearchLive }

// SetTitle writes the title slot; empty clears it.
func (c *Controller) SetTitle(text string) { c.title = text }

// Title returns the title slot.
func (c *Controller) Title() string { return c.title }

// SetIndex installs the loaded search snapshot.
func (c *Controller) SetIndex(ix *searchdata.Index) { c.index = ix }

// Index returns the current snapshot, nil before loading finishes.
func (c *Controller) Index() *searchdata.Index { return c.index }

// SetInput records the search box contents. In live mode a query below
// the minimum length clears the panel right away.
func (c *Controller) SetInput(s string) {
	c.input = s
	if c.mode == SearchLive && utf8.RuneCountInString(strings.TrimSpace(s)) < searchdata.MinQueryLen {
		c.panel = Panel{}
	}
}

// Input returns the search box contents.
func (c *Controller) Input() string { return c.input }

// Search runs query according to the configured mode and returns the
// resulting panel.
func (c *Controller) Search(query string) Panel {
	q := strings.TrimSpace(query)
	if c.mode == SearchStub {
		c.stub(q)
		return c.panel
	}

	if utf8.RuneCountInString(q) < searchdata.MinQueryLen {
		c.panel = Panel{}
		return c.panel
	}

	groups := c.index.Search(q)
	if len(groups) == 0 {
		c.panel = Panel{Kind: PanelNoResults, Query: q}
	} else {
		c.panel = Panel{Kind: PanelResults, Query: q, Groups: groups}
	}
	c.log.Debug("search", zap.String("query", q), zap.Int("groups", len(groups)))
	return c.panel
}

func (c *Controller) stub(q string) {
	if q == "" || c.notify == nil {
		return
	}
	if utf8.RuneCountInString(q) < searchdata.MinQueryLen {
		c.notify.Info("Global search not available")
		return
	}
	c.notify.Info(fmt.Sprintf("Global search: %q - not implemented", q))
}

// Panel returns the current results panel.
func (c *Controller) Panel() Panel { return c.panel }

// Select navigates to the dataset's section, then closes the panel.
func (c *Controller) Select(sectionID string) {
	if c.pub != nil {
		c.pub.Publish(model.SectionChanged{SectionID: sectionID, Section: c.reg.Resolve(sectionID)})
	}
	c.Close()
}

// Close removes the panel and clears the input.
func (c *Controller) Close() {
	c.panel = Panel{}
	c.input = ""
}
