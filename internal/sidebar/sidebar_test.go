package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/events"
	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/prefs"
	"github.com/tuya/fastdata/internal/registry"
)

type fixture struct {
	c      *Controller
	kv     *prefs.Memory
	store  *prefs.Store
	events []model.SectionChanged
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{kv: prefs.NewMemory()}
	f.store = prefs.New(f.kv, zap.NewNop())
	bus := events.NewBus()
	bus.Subscribe(func(ev model.SectionChanged) { f.events = append(f.events, ev) })
	f.c = New(registry.Default(), f.store, bus, zap.NewNop())
	return f
}

func activeIDs(items []NavItem) []string {
	var ids []string
	for _, it := range items {
		if it.Active {
			ids = append(ids, it.Section.ID)
		}
	}
	return ids
}

func TestInitDefaultsOnEmptyStorage(t *testing.T) {
	f := newFixture(t)
	st := f.c.Init()
	assert.Equal(t, "balances", st.CurrentSectionID)
	assert.False(t, st.Collapsed)
	assert.Equal(t, []string{"balances"}, activeIDs(f.c.Items()))
	assert.Empty(t, f.events)
}

func TestInitRestoresPersistedState(t *testing.T) {
	f := newFixture(t)
	f.store.SaveNavigation(model.NavigationState{CurrentSectionID: "customers", Collapsed: true})

	st := f.c.Init()
	assert.Equal(t, "customers", st.CurrentSectionID)
	assert.True(t, st.Collapsed)
}

func TestNavigateExactlyOneActive(t *testing.T) {
	f := newFixture(t)
	f.c.Init()

	for _, id := range []string{"sales", "nope", "test", "", "settings", "ghost"} {
		f.c.Navigate(id)
		assert.Equal(t, []string{id}, activeIDs(f.c.Items()), "after Navigate(%q)", id)
	}
	require.Len(t, f.events, 6)
	assert.Equal(t, "ghost", f.events[5].SectionID)
	assert.Equal(t, model.SectionDescriptor{ID: "ghost"}, f.events[5].Section)
	assert.Equal(t, "Configuración", f.events[4].Section.Title)
}

func TestNavigatePersists(t *testing.T) {
	f := newFixture(t)
	f.c.Init()
	f.c.Navigate("inventory")

	assert.Equal(t, "inventory", f.store.LoadNavigation("balances").CurrentSectionID)
}

func TestToggleTwiceRestores(t *testing.T) {
	f := newFixture(t)
	f.c.Init()
	before := f.c.Collapsed()

	assert.Equal(t, !before, f.c.Toggle())
	assert.Equal(t, before, f.c.Toggle())
	assert.Equal(t, before, f.store.LoadNavigation("balances").Collapsed)
}

func TestSetActiveModes(t *testing.T) {
	f := newFixture(t)
	f.c.Init()

	assert.True(t, f.c.SetActive("sales", Silent))
	assert.Equal(t, "sales", f.c.Current())
	assert.Empty(t, f.events)

	assert.True(t, f.c.SetActive("reports", Notify))
	require.Len(t, f.events, 1)
	assert.Equal(t, "reports", f.events[0].SectionID)

	assert.False(t, f.c.SetActive("unknown", Notify))
	assert.Equal(t, "reports", f.c.Current())
	assert.Len(t, f.events, 1)
}

func TestActiveIndex(t *testing.T) {
	f := newFixture(t)
	f.c.Init()
	f.c.Navigate("test")
	assert.Equal(t, 5, f.c.ActiveIndex())

	f.c.Navigate("other")
	items := f.c.Items()
	assert.Equal(t, len(items)-1, f.c.ActiveIndex())
	assert.Equal(t, []string{"other"}, activeIDs(items))
}

func TestCloseIfOutside(t *testing.T) {
	f := newFixture(t)
	f.c.Init()

	f.c.SetViewportWidth(120)
	assert.False(t, f.c.CloseIfOutside(50, 22), "wide viewport never auto-closes")

	f.c.SetViewportWidth(60)
	assert.False(t, f.c.CloseIfOutside(10, 22), "click inside sidebar")
	assert.True(t, f.c.CloseIfOutside(40, 22))
	assert.True(t, f.c.Collapsed())
	assert.False(t, f.c.CloseIfOutside(40, 22), "already collapsed")
}
