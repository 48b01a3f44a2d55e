package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleValidate(t *testing.T) {
	cases := []struct {
		name  string
		style *Style
		ok    bool
	}{
		{"nil style", nil, false},
		{"unknown type", &Style{Type: "vibes"}, false},
		{"gallery ok", &Style{Type: StyleTypeGallery, StyleID: "cinematic-noir", Name: "Cinematic Noir"}, true},
		{"gallery missing id", &Style{Type: StyleTypeGallery, Name: "Cinematic Noir"}, false},
		{"palette ok", &Style{Type: StyleTypePalette, Colors: []string{"#1a2b3c", "#ffffff", "#000000"}}, true},
		{"palette wrong count", &Style{Type: StyleTypePalette, Colors: []string{"#1a2b3c"}}, false},
		{"palette bad hex", &Style{Type: StyleTypePalette, Colors: []string{"#1a2b3c", "#ffffff", "red"}}, false},
		{"keywords ok", &Style{Type: StyleTypeKeywords, Keywords: []string{"noir"}}, true},
		{"keywords empty", &Style{Type: StyleTypeKeywords, Keywords: []string{"  ", ""}}, false},
		{"keywords too many", &Style{Type: StyleTypeKeywords, Keywords: []string{"a", "b", "c", "d"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.style.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestStyleInfoConvertsHexToRGB(t *testing.T) {
	style := &Style{
		Type:     StyleTypePalette,
		Colors:   []string{"#1a2b3c", "#000000", "#ffffff"},
		Keywords: []string{" noir ", "", "grainy"},
	}
	info := style.Info()
	require.NotNil(t, info)

	assert.Equal(t, []string{"RGB(26, 43, 60)", "RGB(0, 0, 0)", "RGB(255, 255, 255)"}, info.RGBColors)
	assert.Equal(t, []string{"noir", "grainy"}, info.Keywords)

	var none *Style
	assert.Nil(t, none.Info())
}

func TestParseStage(t *testing.T) {
	for _, s := range []Stage{StageScript, StageStoryboard, StageImages, StageVideos, StageVoiceover, StageSoundtrack} {
		got, err := ParseStage(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStage("montage")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
