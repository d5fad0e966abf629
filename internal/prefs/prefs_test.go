package prefs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/duckdb"
	"github.com/tuya/fastdata/internal/model"
)

func TestLoadNavigationDefaults(t *testing.T) {
	s := New(NewMemory(), zap.NewNop())

	st := s.LoadNavigation("balances")
	assert.Equal(t, model.NavigationState{CurrentSectionID: "balances", Collapsed: false}, st)
}

func TestNavigationRoundTrip(t *testing.T) {
	cases := []model.NavigationState{
		{CurrentSectionID: "sales", Collapsed: true},
		{CurrentSectionID: "settings", Collapsed: false},
		{CurrentSectionID: "not-registered", Collapsed: true},
	}
	for _, want := range cases {
		s := New(NewMemory(), nil)
		s.SaveNavigation(want)
		assert.Equal(t, want, s.LoadNavigation("balances"))
	}
}

func TestNavigationRoundTripDuckDB(t *testing.T) {
	store, err := duckdb.NewStore("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	s := New(store, zap.NewNop())
	want := model.NavigationState{CurrentSectionID: "inventory", Collapsed: true}
	s.SaveNavigation(want)
	assert.Equal(t, want, s.LoadNavigation("balances"))
}

func TestMalformedValuesFallBack(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.SetPref(model.PrefSidebarCollapsed, "not json"))
	require.NoError(t, kv.SetPref(model.PrefCurrentSection, "42"))

	st := New(kv, nil).LoadNavigation("balances")
	assert.Equal(t, "balances", st.CurrentSectionID)
	assert.False(t, st.Collapsed)
}

func TestBackendErrorsAreSilent(t *testing.T) {
	kv := NewMemory()
	kv.Err = errors.New("disk full")
	s := New(kv, zap.NewNop())

	assert.False(t, s.Set("k", 1))
	assert.False(t, s.Remove("k"))
	assert.False(t, s.Clear())

	var v int
	assert.False(t, s.Get("k", &v))

	st := s.LoadNavigation("balances")
	assert.Equal(t, "balances", st.CurrentSectionID)
	s.SaveNavigation(st)
}

func TestRemoveAndClear(t *testing.T) {
	kv := NewMemory()
	s := New(kv, nil)

	require.True(t, s.Set("a", "x"))
	require.True(t, s.Set("b", []int{1, 2}))

	var got []int
	require.True(t, s.Get("b", &got))
	assert.Equal(t, []int{1, 2}, got)

	assert.True(t, s.Remove("a"))
	var str string
	assert.False(t, s.Get("a", &str))

	assert.True(t, s.Clear())
	assert.Equal(t, 0, kv.Len())
}
