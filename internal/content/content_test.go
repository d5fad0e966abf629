package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuya/fastdata/internal/registry"
	"github.com/tuya/fastdata/internal/upload"
)

func TestEveryRegisteredSectionHasTemplate(t *testing.T) {
	for _, s := range registry.Default().All() {
		p := Template(s.ID)
		assert.NotEqual(t, KindFallback, p.Kind, s.ID)
		assert.Equal(t, s.Title, p.Title, s.ID)
		assert.Equal(t, s.ID, p.SectionID)
	}
}

func TestUnknownSectionFallback(t *testing.T) {
	p := Template("ghost")
	assert.Equal(t, KindFallback, p.Kind)
	assert.Equal(t, "ghost", p.SectionID)
	assert.Equal(t, "Section ghost", p.Heading)
	assert.Equal(t, "Content not available", p.Subtitle)

	p = Template("")
	assert.Equal(t, KindFallback, p.Kind)
}

func TestRenderRebindsUploadFlow(t *testing.T) {
	r := NewRenderer(nil)
	assert.False(t, r.IsLoaded(""))

	r.Render("test")
	first := r.Binding().Upload
	require.NotNil(t, first)
	require.NoError(t, first.Select(upload.FileInfo{Name: "a.csv"}))

	r.Render("test")
	second := r.Binding().Upload
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, upload.NoFileSelected, second.State())

	r.Render("sales")
	assert.Nil(t, r.Binding().Upload)
	assert.True(t, r.IsLoaded("sales"))
	assert.Equal(t, "Ventas", r.Panel().Title)
}

func TestReportsUsesDatasetChart(t *testing.T) {
	assert.Equal(t, KindDatasetChart, Template("reports").Kind)
}
