package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	StyleTypeGallery  = "gallery"
	StyleTypePalette  = "palette"
	StyleTypeKeywords = "keywords"

	// PaletteSize is the exact number of colors a palette style carries.
	PaletteSize = 3
	// MaxStyleKeywords bounds a keywords style.
	MaxStyleKeywords = 3
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Style is the visual style attached to a project. Exactly one of the three
// variants is active; selecting a new style replaces the prior one wholesale.
type Style struct {
	Type     string   `json:"type"`
	StyleID  string   `json:"styleId,omitempty"`
	Name     string   `json:"name,omitempty"`
	Colors   []string `json:"colors,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

func (s *Style) Validate() error {
	if s == nil {
		return fmt.Errorf("style is required: %w", ErrInvalidArgument)
	}
	switch s.Type {
	case StyleTypeGallery:
		if s.StyleID == "" || s.Name == "" {
			return fmt.Errorf("gallery style requires styleId and name: %w", ErrInvalidArgument)
		}
	case StyleTypePalette:
		if len(s.Colors) != PaletteSize {
			return fmt.Errorf("palette style requires exactly %d colors: %w", PaletteSize, ErrInvalidArgument)
		}
		for _, c := range s.Colors {
			if !hexColorRe.MatchString(c) {
				return fmt.Errorf("invalid hex color %q: %w", c, ErrInvalidArgument)
			}
		}
	case StyleTypeKeywords:
		kws := trimmedNonEmpty(s.Keywords)
		if len(kws) == 0 || len(kws) > MaxStyleKeywords {
			return fmt.Errorf("keywords style requires 1 to %d keywords: %w", MaxStyleKeywords, ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("unknown style type %q: %w", s.Type, ErrInvalidArgument)
	}
	return nil
}

// Info derives the keyword/color metadata threaded through every stage's
// prompt. Passed by value into the prompt builders.
func (s *Style) Info() *StyleInfo {
	if s == nil {
		return nil
	}
	rgb := make([]string, 0, len(s.Colors))
	for _, c := range s.Colors {
		rgb = append(rgb, hexToRGB(c))
	}
	return &StyleInfo{
		Keywords:  trimmedNonEmpty(s.Keywords),
		RGBColors: rgb,
	}
}

// hexToRGB renders "#1a2b3c" as "RGB(26, 43, 60)". Unparseable values pass
// through unchanged.
func hexToRGB(hex string) string {
	if !hexColorRe.MatchString(hex) {
		return hex
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("RGB(%d, %d, %d)", (v>>16)&0xff, (v>>8)&0xff, v&0xff)
}

// StyleInfo is the style metadata embedded in stage outputs.
type StyleInfo struct {
	Keywords  []string `json:"keywords,omitempty"`
	RGBColors []string `json:"rgbColors,omitempty"`
}

func trimmedNonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
