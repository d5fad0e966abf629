package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/content"
	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/navbar"
	"github.com/tuya/fastdata/internal/notify"
	"github.com/tuya/fastdata/internal/prefs"
	"github.com/tuya/fastdata/internal/registry"
	"github.com/tuya/fastdata/internal/searchdata"
)

var fixedNow = time.Date(2024, 2, 3, 4, 5, 6, 789_000_000, time.UTC)

func newTestApp(t *testing.T, kv *prefs.Memory) *App {
	t.Helper()
	if kv == nil {
		kv = prefs.NewMemory()
	}
	a, err := New(Deps{
		Registry:   registry.Default(),
		Prefs:      prefs.New(kv, zap.NewNop()),
		Notifier:   notify.New(notify.ModeStack, time.Second),
		SearchMode: navbar.SearchLive,
		Log:        zap.NewNop(),
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	t.Cleanup(a.Stop)
	return a
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
	_, err = New(Deps{Registry: registry.Default()})
	assert.Error(t, err)
}

func TestStartWithEmptyStorage(t *testing.T) {
	a := newTestApp(t, nil)
	a.Start()

	assert.Equal(t, "balances", a.Sidebar.Current())
	assert.False(t, a.Sidebar.Collapsed())
	assert.Equal(t, "Saldos", a.Navbar.Title())
	assert.True(t, a.Content.IsLoaded("balances"))
	assert.Equal(t, "fastdata://dashboard#balances", a.Location.String())

	v := a.Notifier.Visible()
	require.NotEmpty(t, v)
	welcome := v[len(v)-1]
	assert.Equal(t, "Welcome to TUYA Fast-Data!", welcome.Message)
	assert.Equal(t, notify.LevelSuccess, welcome.Level)
	assert.Equal(t, model.DefaultWelcomeTimeout, welcome.Duration)
	assert.True(t, a.Info().Initialized)
}

func TestStartRestoresPersistedSection(t *testing.T) {
	kv := prefs.NewMemory()
	prefs.New(kv, nil).SaveNavigation(model.NavigationState{CurrentSectionID: "test", Collapsed: true})

	a := newTestApp(t, kv)
	a.Start()

	assert.Equal(t, "Test", a.Navbar.Title())
	assert.NotNil(t, a.Content.Binding().Upload)
	assert.True(t, a.Sidebar.Collapsed())
}

func TestStartWithUnregisteredPersistedSection(t *testing.T) {
	kv := prefs.NewMemory()
	prefs.New(kv, nil).SaveNavigation(model.NavigationState{CurrentSectionID: "legacy"})

	a := newTestApp(t, kv)
	a.Start()

	assert.Equal(t, "legacy", a.Navbar.Title())
	assert.Equal(t, content.KindFallback, a.Content.Panel().Kind)
	assert.Equal(t, "legacy", a.Location.Fragment())
}

func TestSidebarNavigationRelays(t *testing.T) {
	a := newTestApp(t, nil)
	a.Start()
	before := a.Location.Replacements()

	a.Sidebar.Navigate("sales")
	assert.Equal(t, "Ventas", a.Navbar.Title())
	assert.True(t, a.Content.IsLoaded("sales"))
	assert.Equal(t, "sales", a.Location.Fragment())
	assert.Equal(t, before+1, a.Location.Replacements())

	a.Sidebar.Navigate("nowhere")
	assert.Equal(t, "nowhere", a.Navbar.Title())
	assert.Equal(t, "Section nowhere", a.Content.Panel().Heading)
}

func TestNavbarSelectSyncsSidebar(t *testing.T) {
	kv := prefs.NewMemory()
	a := newTestApp(t, kv)
	a.Start()
	a.InstallSearchData(searchdata.NewIndex([]searchdata.Dataset{{
		Source:  searchdata.Source{ID: "inventory", Title: "Inventario"},
		Records: []model.SearchRecord{{Question: "Stock level", Answer: "42"}},
	}}))

	p := a.Navbar.Search("stock")
	require.Equal(t, navbar.PanelResults, p.Kind)
	a.Navbar.Select(p.Groups[0].SectionID)

	assert.Equal(t, "inventory", a.Sidebar.Current())
	assert.Equal(t, "Inventario", a.Navbar.Title())
	assert.False(t, a.Navbar.Panel().Visible())
	assert.Equal(t, "inventory", prefs.New(kv, nil).LoadNavigation("balances").CurrentSectionID)
}

func TestExportImportRoundTrip(t *testing.T) {
	a := newTestApp(t, nil)
	a.Start()
	a.Sidebar.Navigate("customers")
	a.Sidebar.Toggle()

	data, err := a.Export()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	settings := doc["settings"].(map[string]any)
	assert.Equal(t, true, settings["sidebarCollapsed"])
	assert.Equal(t, "customers", settings["currentSection"])
	assert.Equal(t, "2024-02-03T04:05:06.789Z", doc["exportDate"])

	kv := prefs.NewMemory()
	b := newTestApp(t, kv)
	require.NoError(t, b.Import(data))
	b.Start()
	assert.Equal(t, "customers", b.Sidebar.Current())
	assert.True(t, b.Sidebar.Collapsed())
}

func TestImportAcceptsSectionObject(t *testing.T) {
	kv := prefs.NewMemory()
	a := newTestApp(t, kv)
	require.NoError(t, a.Import([]byte(`{"settings":{"currentSection":{"id":"reports"}}}`)))

	st := prefs.New(kv, nil).LoadNavigation("balances")
	assert.Equal(t, "reports", st.CurrentSectionID)
	assert.False(t, st.Collapsed)
}

func TestImportRejectsGarbage(t *testing.T) {
	a := newTestApp(t, nil)
	assert.Error(t, a.Import([]byte("not json")))
	v := a.Notifier.Visible()
	require.NotEmpty(t, v)
	assert.Equal(t, notify.LevelDanger, v[len(v)-1].Level)
}

func TestReset(t *testing.T) {
	kv := prefs.NewMemory()
	a := newTestApp(t, kv)
	a.Start()
	a.Sidebar.Navigate("sales")
	require.NotZero(t, kv.Len())

	a.Reset()
	assert.Zero(t, kv.Len())
}

func TestLoadSearchData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/data/responses/sales.json" {
			w.Write([]byte(`[{"question":"Best seller","answer":"Widget"}]`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()
	hc := srv.Client()
	defer hc.CloseIdleConnections()

	a, err := New(Deps{
		Registry: registry.Default(),
		Prefs:    prefs.New(prefs.NewMemory(), nil),
		Loader:   &searchdata.Loader{BaseURL: srv.URL, Path: "/data/responses", Client: hc},
	})
	require.NoError(t, err)

	ix := a.LoadSearchData(context.Background())
	a.InstallSearchData(ix)
	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, navbar.PanelResults, a.Navbar.Search("seller").Kind)
}

func TestLocationString(t *testing.T) {
	var l Location
	assert.Equal(t, "fastdata://dashboard", l.String())
	l.Replace("settings")
	assert.Equal(t, "fastdata://dashboard#settings", l.String())
}
