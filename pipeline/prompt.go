package pipeline

import (
	"fmt"
	"math/rand"
	"strings"

	"aida-server/models"
)

// Prompt builders. Pure functions: no I/O, no clock, no internal randomness.
// Keyword subsets are picked with an explicit seed so the same inputs always
// render the same instruction string.

const (
	scriptPreamble = `You are a writer agent specialized in copywriting, screenwriting and creative writing for video and cinema. `
	scriptClosing  = `Each part of the script must be at least 200 characters long and must include visual, emotional and narrative details.`

	storyboardPreamble = `You are a director agent specialized in directing, cinematography and prompt engineering for Midjourney. ` +
		`You will analyze a script and develop a detailed storyboard with Midjourney prompts. `
	storyboardClosing = `Create 6-12 Midjourney prompts that visually tell this story. ` +
		`For each scene, also specify camera movements, lighting and other technical details. ` +
		`Finally, create a prompt for generating music to accompany the video.`

	// DefaultStyleKeywords fills the style placeholder when no style is set.
	DefaultStyleKeywords = "artistic, detailed, cinematic"

	styleKeywordsPlaceholder = "[style keywords]"
)

// BuildScriptPrompt renders the writer-agent instruction. The user prompt is
// embedded verbatim; keyword and color clauses appear only when the style
// carries them.
func BuildScriptPrompt(userPrompt string, info *models.StyleInfo) (string, error) {
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return "", fmt.Errorf("user prompt must not be empty: %w", models.ErrInvalidArgument)
	}

	var b strings.Builder
	b.WriteString(scriptPreamble)
	fmt.Fprintf(&b, "Create a script divided into %d distinct narrative parts for a video that tells: \"%s\". ",
		models.ScriptPartCount, userPrompt)
	writeStyleClauses(&b, info, "")
	b.WriteString(scriptClosing)
	return b.String(), nil
}

// BuildStoryboardPrompt renders the director-agent instruction, enumerating
// every script part in order.
func BuildStoryboardPrompt(script *models.Script, info *models.StyleInfo) (string, error) {
	if script == nil || len(script.Parts) == 0 {
		return "", fmt.Errorf("script has no parts: %w", models.ErrInvalidArgument)
	}

	var b strings.Builder
	b.WriteString(storyboardPreamble)
	b.WriteString("The script is divided into these parts:\n")
	for i, part := range script.Parts {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, part.Title, part.Content)
	}
	writeStyleClauses(&b, info, "\n")
	b.WriteString("\n")
	b.WriteString(storyboardClosing)
	return b.String(), nil
}

// BuildImagePrompt personalizes one storyboard image prompt: the style
// placeholder is filled with the caller-supplied keyword selection, or with
// the neutral defaults when the selection is empty.
func BuildImagePrompt(p models.ImagePrompt, selected []string) (string, error) {
	if strings.TrimSpace(p.Prompt) == "" {
		return "", fmt.Errorf("image prompt must not be empty: %w", models.ErrInvalidArgument)
	}
	keywords := DefaultStyleKeywords
	if len(selected) > 0 {
		keywords = strings.Join(selected, ", ")
	}
	return strings.ReplaceAll(p.Prompt, styleKeywordsPlaceholder, keywords), nil
}

// BuildVideoPrompt describes how each generated image should be animated,
// scene by scene, following the storyboard directions.
func BuildVideoPrompt(images *models.ImageSet, directions []models.Direction) (string, error) {
	if images == nil || len(images.Images) == 0 {
		return "", fmt.Errorf("image set is empty: %w", models.ErrInvalidArgument)
	}
	if len(directions) == 0 {
		return "", fmt.Errorf("storyboard has no directions: %w", models.ErrInvalidArgument)
	}

	var b strings.Builder
	b.WriteString("Animate the following scenes into short video clips, honoring each direction:\n")
	for _, d := range directions {
		fmt.Fprintf(&b, "Scene %d (%s): %s camera, %s lighting, %s mood. %s\n",
			d.SceneNumber, d.Title, d.CameraMovement, d.Lighting, d.Mood, d.Notes)
	}
	return b.String(), nil
}

// BuildVoiceoverPrompt assembles the narration text from the script parts.
func BuildVoiceoverPrompt(script *models.Script, voice string) (string, error) {
	if script == nil || len(script.Parts) == 0 {
		return "", fmt.Errorf("script has no parts: %w", models.ErrInvalidArgument)
	}
	voice = strings.TrimSpace(voice)
	if voice == "" {
		return "", fmt.Errorf("voice must not be empty: %w", models.ErrInvalidArgument)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Read the following narration in a %s voice, with natural pacing and clear diction:\n", voice)
	for _, part := range script.Parts {
		b.WriteString(part.Content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// BuildSoundtrackPrompt extends the storyboard's music prompt with the
// requested mood and duration.
func BuildSoundtrackPrompt(musicPrompt, mood string, lengthSec int) (string, error) {
	musicPrompt = strings.TrimSpace(musicPrompt)
	if musicPrompt == "" {
		return "", fmt.Errorf("music prompt must not be empty: %w", models.ErrInvalidArgument)
	}

	var b strings.Builder
	b.WriteString(musicPrompt)
	if mood = strings.TrimSpace(mood); mood != "" {
		fmt.Fprintf(&b, "\nThe overall mood should be %s.", mood)
	}
	if lengthSec > 0 {
		fmt.Fprintf(&b, "\nTarget duration: about %d seconds.", lengthSec)
	}
	return b.String(), nil
}

// SelectKeywords returns up to n keywords in a seed-determined order. The
// input slice is never mutated.
func SelectKeywords(keywords []string, n int, seed int64) []string {
	if len(keywords) == 0 || n <= 0 {
		return nil
	}
	shuffled := append([]string(nil), keywords...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func writeStyleClauses(b *strings.Builder, info *models.StyleInfo, prefix string) {
	if info == nil {
		return
	}
	if len(info.Keywords) > 0 {
		fmt.Fprintf(b, "%sThe style must reflect these keywords: %s. ", prefix, strings.Join(info.Keywords, ", "))
	}
	if len(info.RGBColors) > 0 {
		fmt.Fprintf(b, "%sThe reference color palette includes: %s. ", prefix, strings.Join(info.RGBColors, ", "))
	}
}
