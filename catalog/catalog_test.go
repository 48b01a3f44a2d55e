package catalog

import (
	"testing"

	"aida-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryEntriesAreValidStyles(t *testing.T) {
	entries := Styles()
	require.NotEmpty(t, entries)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.StyleID], "duplicate style id %s", e.StyleID)
		seen[e.StyleID] = true

		style := e.Style()
		assert.NoError(t, style.Validate(), "gallery entry %s", e.StyleID)
		assert.Equal(t, models.PaletteSize, len(e.Colors), "gallery entry %s", e.StyleID)
	}
}

func TestGet(t *testing.T) {
	e, ok := Get("cinematic-noir")
	require.True(t, ok)
	assert.Equal(t, "Cinematic Noir", e.Name)

	_, ok = Get("missing")
	assert.False(t, ok)
}

func TestStylesReturnsCopy(t *testing.T) {
	first := Styles()
	first[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Styles()[0].Name)
}

func TestKeywordSuggestionsReturnsCopy(t *testing.T) {
	got := KeywordSuggestions()
	require.Contains(t, got, "Mood")
	got["Mood"][0] = "mutated"
	assert.NotEqual(t, "mutated", KeywordSuggestions()["Mood"][0])
}
