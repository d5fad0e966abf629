package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/app"
	"github.com/tuya/fastdata/internal/fetch"
	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/searchdata"
	"github.com/tuya/fastdata/internal/upload"
)

// Section is the dashboard area that owns keyboard focus.
type Section int

const (
	SectionSidebar Section = iota // section navigation
	SectionContent                // main panel
	SectionSearch                 // navbar search box
)

// SettingRow is one label/value line of the settings panel.
type SettingRow struct {
	Label string
	Value string
}

// Deps are the collaborators the dashboard needs beyond the shell itself.
type Deps struct {
	App      *app.App
	Uploader *upload.Client
	// Health probes the backend; nil disables the status dot.
	Health         func(ctx context.Context) error
	HealthRetries  int
	UploadTimeout  time.Duration
	SearchDebounce time.Duration
	Settings       []SettingRow
	Log            *zap.Logger

	ReverseScrollWheel bool
}

// SearchState holds the navbar search box.
type SearchState struct {
	searchInput   textinput.Model
	searchActive  bool
	debounce      *fetch.Debouncer
	resultCursor  int // -1 = input, otherwise index into flattened results
	searchLoading bool
}

// SidebarState holds the keyboard cursor over the nav items.
type SidebarState struct {
	sidebarCursor int
}

// ModalStackState holds the modal stack.
type ModalStackState struct {
	modalStack []Modal
}

// BackendState is the last known backend reachability.
type BackendState int

const (
	BackendUnknown BackendState = iota
	BackendUp
	BackendDown
)

// DashboardModel is the main TUI model. Controller state lives in the
// shell (app.App); this model only keeps focus, input widgets and the
// async bookkeeping.
type DashboardModel struct {
	SearchState
	SidebarState
	ModalStackState

	width  int
	height int

	shell    *app.App
	uploader *upload.Client
	health   func(ctx context.Context) error
	log      *zap.Logger
	keys     KeyMap

	healthRetries      int
	uploadTimeout      time.Duration
	settings           []SettingRow
	reverseScrollWheel bool

	activeSection Section
	prevSection   Section

	backend        BackendState
	backendChecked time.Time
	uploadsPending int

	// Inline handlers for the search input (part of the layout, not a modal).
	inlineHandlers []inlineHandlerEntry

	viewStyle lipgloss.Style
}

// searchDataLoadedMsg carries the snapshot built by the background load.
type searchDataLoadedMsg struct {
	index *searchdata.Index
}

// searchDebounceMsg fires after the debounce delay for sequence seq.
type searchDebounceMsg struct {
	seq uint64
}

// notifyExpireMsg dismisses one notification.
type notifyExpireMsg struct {
	id string
}

// uploadDoneMsg reports the outcome of an upload. flow is the flow that
// started it, which may no longer be on screen.
type uploadDoneMsg struct {
	flow *upload.Flow
	resp upload.Response
	err  error
}

// healthMsg reports a backend probe.
type healthMsg struct {
	err error
	at  time.Time
}

// NewDashboardModel builds the dashboard around a started shell.
func NewDashboardModel(d Deps) *DashboardModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search all sections..."
	searchInput.CharLimit = 120
	searchInput.Prompt = "⌕ "

	debounce := d.SearchDebounce
	if debounce <= 0 {
		debounce = model.DefaultSearchDebounce
	}
	uploadTimeout := d.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = model.DefaultUploadTimeout
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	m := &DashboardModel{
		SearchState: SearchState{
			searchInput:   searchInput,
			debounce:      fetch.NewDebouncer(debounce),
			resultCursor:  -1,
			searchLoading: true,
		},
		shell:              d.App,
		uploader:           d.Uploader,
		health:             d.Health,
		healthRetries:      d.HealthRetries,
		uploadTimeout:      uploadTimeout,
		settings:           d.Settings,
		reverseScrollWheel: d.ReverseScrollWheel,
		log:                log,
		keys:               DefaultKeyMap(),
		activeSection:      SectionSidebar,
	}
	m.syncSidebarCursor()

	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: func(m *DashboardModel) bool { return m.searchActive }, handler: searchInputHandler{}},
	}
	return m
}

// Init starts the background work: search data, backend probe and the
// expiry timers of notifications posted during startup.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadSearchDataCmd(),
		m.healthCmd(),
		m.expiryCmds(),
		textinput.Blink,
	)
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// modalContext returns the read-only context handed to modals.
func (m *DashboardModel) modalContext() ModalContext {
	return ModalContext{ReverseScrollWheel: m.reverseScrollWheel}
}

// currentFlow returns the upload flow bound to the visible section.
func (m *DashboardModel) currentFlow() *upload.Flow {
	return m.shell.Content.Binding().Upload
}

// focus moves keyboard focus, remembering where it came from.
func (m *DashboardModel) focus(s Section) {
	if m.activeSection != s {
		m.prevSection = m.activeSection
	}
	m.activeSection = s
}
