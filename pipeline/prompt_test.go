package pipeline

import (
	"strings"
	"testing"

	"aida-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScriptPromptEmbedsUserPrompt(t *testing.T) {
	userPrompt := "a lighthouse keeper who befriends a migrating whale"
	got, err := BuildScriptPrompt(userPrompt, nil)
	require.NoError(t, err)

	assert.Contains(t, got, userPrompt)
	assert.Contains(t, got, "5 distinct narrative parts")
	assert.Contains(t, got, "at least 200 characters")
	assert.NotContains(t, got, "keywords:")
	assert.NotContains(t, got, "color palette")
}

func TestBuildScriptPromptStyleClauses(t *testing.T) {
	info := &models.StyleInfo{
		Keywords:  []string{"noir", "high contrast"},
		RGBColors: []string{"rgb(10, 10, 10)", "rgb(200, 30, 30)", "rgb(240, 240, 240)"},
	}
	got, err := BuildScriptPrompt("a heist gone wrong", info)
	require.NoError(t, err)

	assert.Contains(t, got, "The style must reflect these keywords: noir, high contrast. ")
	assert.Contains(t, got, "The reference color palette includes: rgb(10, 10, 10), rgb(200, 30, 30), rgb(240, 240, 240). ")
}

func TestBuildScriptPromptRejectsEmptyPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := BuildScriptPrompt(prompt, nil)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	}
}

func TestBuildScriptPromptDeterministic(t *testing.T) {
	info := &models.StyleInfo{Keywords: []string{"pastel", "soft"}}
	a, err := BuildScriptPrompt("same story", info)
	require.NoError(t, err)
	b, err := BuildScriptPrompt("same story", info)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildStoryboardPromptEnumeratesParts(t *testing.T) {
	script := &models.Script{
		Parts: []models.ScriptPart{
			{Title: "Introduction", Content: "The harbor at dawn."},
			{Title: "Development", Content: "The first voyage."},
		},
	}
	got, err := BuildStoryboardPrompt(script, nil)
	require.NoError(t, err)

	assert.Contains(t, got, "1. Introduction: The harbor at dawn.\n")
	assert.Contains(t, got, "2. Development: The first voyage.\n")
	assert.Contains(t, got, "6-12 Midjourney prompts")
	assert.Contains(t, got, "music")
}

func TestBuildStoryboardPromptRejectsEmptyScript(t *testing.T) {
	_, err := BuildStoryboardPrompt(nil, nil)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = BuildStoryboardPrompt(&models.Script{}, nil)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestBuildImagePromptFillsPlaceholder(t *testing.T) {
	p := models.ImagePrompt{Prompt: "Wide shot of the bay, [style keywords], --ar 16:9"}

	got, err := BuildImagePrompt(p, []string{"noir", "grainy"})
	require.NoError(t, err)
	assert.Equal(t, "Wide shot of the bay, noir, grainy, --ar 16:9", got)

	got, err = BuildImagePrompt(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "Wide shot of the bay, "+DefaultStyleKeywords+", --ar 16:9", got)
}

func TestBuildVoiceoverPromptJoinsParts(t *testing.T) {
	script := &models.Script{
		Parts: []models.ScriptPart{
			{Title: "Introduction", Content: "Once there was a harbor."},
			{Title: "Resolution", Content: "And the ships came home."},
		},
	}
	got, err := BuildVoiceoverPrompt(script, "warm narrator")
	require.NoError(t, err)

	assert.Contains(t, got, "warm narrator")
	assert.Contains(t, got, "Once there was a harbor.")
	assert.Contains(t, got, "And the ships came home.")
}

func TestBuildSoundtrackPromptAppendsMoodAndDuration(t *testing.T) {
	got, err := BuildSoundtrackPrompt("Orchestral piece in five movements.", "melancholic", 90)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "Orchestral piece in five movements."))
	assert.Contains(t, got, "melancholic")
	assert.Contains(t, got, "90 seconds")

	_, err = BuildSoundtrackPrompt("  ", "", 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestSelectKeywordsSeededAndNonMutating(t *testing.T) {
	keywords := []string{"a", "b", "c", "d", "e"}
	orig := append([]string(nil), keywords...)

	first := SelectKeywords(keywords, 3, 42)
	second := SelectKeywords(keywords, 3, 42)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.Equal(t, orig, keywords)

	for _, k := range first {
		assert.Contains(t, orig, k)
	}

	assert.Len(t, SelectKeywords(keywords, 10, 1), len(keywords))
	assert.Nil(t, SelectKeywords(nil, 3, 1))
	assert.Nil(t, SelectKeywords(keywords, 0, 1))
}
