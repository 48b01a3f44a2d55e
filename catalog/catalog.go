// Package catalog holds the curated style gallery and the keyword
// suggestions shown in the style picker. Read-only; selecting a gallery
// style copies its record into the project.
package catalog

import "aida-server/models"

type Entry struct {
	StyleID  string   `json:"styleId"`
	Name     string   `json:"name"`
	Colors   []string `json:"colors"`
	Keywords []string `json:"keywords"`
}

var gallery = []Entry{
	{
		StyleID:  "cinematic-noir",
		Name:     "Cinematic Noir",
		Colors:   []string{"#1C1C1E", "#8E8E93", "#C62828"},
		Keywords: []string{"noir", "high contrast", "dramatic", "mysterious"},
	},
	{
		StyleID:  "pastel-dream",
		Name:     "Pastel Dream",
		Colors:   []string{"#F8BBD0", "#B3E5FC", "#FFF9C4"},
		Keywords: []string{"ethereal", "soft", "serene", "dreamlike"},
	},
	{
		StyleID:  "neon-future",
		Name:     "Neon Future",
		Colors:   []string{"#0D0221", "#FF2A6D", "#05D9E8"},
		Keywords: []string{"cyberpunk", "neon", "futuristic", "vibrant"},
	},
	{
		StyleID:  "earthy-documentary",
		Name:     "Earthy Documentary",
		Colors:   []string{"#4E342E", "#8D6E63", "#A5D6A7"},
		Keywords: []string{"naturalistic", "organic", "warm", "intimate"},
	},
}

// suggestions groups common visual-style keywords for the keyword picker.
var suggestions = map[string][]string{
	"Artistic styles": {
		"Impressionism", "Minimalism", "Pop Art", "Abstract", "Retro",
		"Vintage", "Surrealism", "Cubism", "Art Deco", "Futuristic",
		"Gothic", "Baroque", "Realism", "Expressionism", "Anime",
	},
	"Mood": {
		"Calm", "Energetic", "Serene", "Cheerful", "Melancholic",
		"Dramatic", "Mysterious", "Romantic", "Nostalgic", "Ethereal",
		"Dark", "Bright", "Tranquil", "Intense", "Vibrant",
	},
	"Textures and materials": {
		"Wood", "Metal", "Glass", "Water", "Stone",
		"Fabric", "Paper", "Ceramic", "Velvet", "Sand",
		"Marble", "Concrete", "Plastic", "Leather", "Crystal",
	},
}

func Styles() []Entry {
	return append([]Entry(nil), gallery...)
}

func Get(styleID string) (Entry, bool) {
	for _, e := range gallery {
		if e.StyleID == styleID {
			return e, true
		}
	}
	return Entry{}, false
}

func KeywordSuggestions() map[string][]string {
	out := make(map[string][]string, len(suggestions))
	for k, v := range suggestions {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Style converts a gallery entry into a project style.
func (e Entry) Style() *models.Style {
	return &models.Style{
		Type:     models.StyleTypeGallery,
		StyleID:  e.StyleID,
		Name:     e.Name,
		Colors:   append([]string(nil), e.Colors...),
		Keywords: append([]string(nil), e.Keywords...),
	}
}
