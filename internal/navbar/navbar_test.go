package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuya/fastdata/internal/events"
	"github.com/tuya/fastdata/internal/model"
	"github.com/tuya/fastdata/internal/registry"
	"github.com/tuya/fastdata/internal/searchdata"
)

type recordingNotifier struct {
	infos []string
}

func (r *recordingNotifier) Info(msg string) { r.infos = append(r.infos, msg) }
func (r *recordingNotifier) Success(string) {}
func (r *recordingNotifier) Warning(string) {}
func (r *recordingNotifier) Danger(string) {}

func sampleIndex() *searchdata.Index {
	return searchdata.NewIndex([]searchdata.Dataset{
		{
			Source: searchdata.Source{ID: "reports", Title: "Reportes"},
			Records: []model.SearchRecord{
				{Question: "What is a fact?", Answer: "A verified statement."},
				{Question: "Quarterly summary", Answer: "Up 4%"},
				{Question: "Open items", Answer: "12"},
				{Question: "Owner", Answer: "Finance"},
				{Question: "Cadence", Answer: "Monthly"},
			},
		},
	})
}

func TestLiveSearchResults(t *testing.T) {
	c := New(SearchLive, registry.Default(), nil, nil, nil)
	c.SetIndex(sampleIndex())

	p := c.Search("fact")
	require.Equal(t, PanelResults, p.Kind)
	require.Len(t, p.Groups, 1)
	require.Len(t, p.Groups[0].Matches, 1)
	assert.Equal(t, model.MatchQuestion, p.Groups[0].Matches[0].MatchType)
	assert.Equal(t, "fact", p.Query)
}

func TestLiveSearchShortQueryClears(t *testing.T) {
	c := New(SearchLive, registry.Default(), nil, nil, nil)
	c.SetIndex(sampleIndex())

	c.Search("fact")
	require.True(t, c.Panel().Visible())

	p := c.Search("f")
	assert.False(t, p.Visible())

	c.Search("fact")
	c.SetInput("f")
	assert.False(t, c.Panel().Visible())
}

func TestLiveSearchNoResultsPanel(t *testing.T) {
	c := New(SearchLive, registry.Default(), nil, nil, nil)
	c.SetIndex(sampleIndex())

	p := c.Search("nothing here")
	assert.Equal(t, PanelNoResults, p.Kind)
	assert.Empty(t, p.Groups)
}

func TestSearchBeforeIndexLoaded(t *testing.T) {
	c := New(SearchLive, registry.Default(), nil, nil, nil)
	assert.Equal(t, PanelNoResults, c.Search("fact").Kind)
}

func TestStubSearchNotifies(t *testing.T) {
	n := &recordingNotifier{}
	c := New(SearchStub, registry.Default(), nil, n, nil)
	c.SetIndex(sampleIndex())

	assert.False(t, c.Search("fact").Visible())
	c.Search("f")
	c.Search("  ")
	assert.Equal(t, []string{
		`Global search: "fact" - not implemented`,
		"Global search not available",
	}, n.infos)
	assert.False(t, c.Live())
}

func TestSelectPublishesAndCloses(t *testing.T) {
	bus := events.NewBus()
	var got []model.SectionChanged
	bus.Subscribe(func(ev model.SectionChanged) { got = append(got, ev) })

	c := New(SearchLive, registry.Default(), bus, nil, nil)
	c.SetIndex(sampleIndex())
	c.SetInput("fact")
	c.Search("fact")

	c.Select("reports")
	require.Len(t, got, 1)
	assert.Equal(t, "reports", got[0].SectionID)
	assert.Equal(t, "Reportes", got[0].Section.Title)
	assert.False(t, c.Panel().Visible())
	assert.Empty(t, c.Input())
}

func TestTitle(t *testing.T) {
	c := New("", registry.Default(), nil, nil, nil)
	assert.Equal(t, SearchLive, c.Mode())
	c.SetTitle("Ventas")
	assert.Equal(t, "Ventas", c.Title())
	c.SetTitle("")
	assert.Empty(t, c.Title())
}

func TestParseSearchMode(t *testing.T) {
	m, err := ParseSearchMode("stub")
	require.NoError(t, err)
	assert.Equal(t, SearchStub, m)

	_, err = ParseSearchMode("fuzzy")
	assert.Error(t, err)
}
