package pipeline

import (
	"fmt"
	"strings"

	"aida-server/models"
)

// Deterministic fallback generation, used when no live backend is
// configured. Every function here is pure: same inputs, same output. The
// content mirrors what the writer/director agents are asked for, so the
// whole pipeline stays exercisable offline.

func fallbackScriptParts(userPrompt string) []models.ScriptPart {
	return []models.ScriptPart{
		{
			Title: models.ScriptBeats[0],
			Content: fmt.Sprintf("The scene opens by laying out the main setting of our story. %s begins to take shape "+
				"as the principal characters and their surroundings are introduced. The atmosphere is charged with "+
				"anticipation and possibility, inviting the audience to settle into the world.", userPrompt),
		},
		{
			Title: models.ScriptBeats[1],
			Content: "We deepen the narrative elements as the protagonists set out on their journey. Obstacles surface " +
				"and relationships take definite shape around them. The tension grows steadily scene by scene, and the " +
				"audience begins to understand exactly what is at stake for everyone involved.",
		},
		{
			Title: models.ScriptBeats[2],
			Content: "We reach the point of greatest tension as the central conflicts fully emerge. The characters face " +
				"significant challenges and are forced to make important decisions under pressure. Emotions run at their " +
				"most intense, and the moral dilemmas at the heart of the story become impossible to ignore.",
		},
		{
			Title: models.ScriptBeats[3],
			Content: "In the culminating moment every line of tension converges on a decisive turning point. The " +
				"protagonists stand before their defining challenge and must prove how far they have grown. The action " +
				"reaches its peak of intensity, carrying the story to the edge of its resolution.",
		},
		{
			Title: models.ScriptBeats[4],
			Content: "As the story draws to a close, the conflicts find their resolution and the characters complete " +
				"their arcs. The atmosphere shifts, offering a new perspective and a sense of completion after everything " +
				"that came before. The audience is left with a final message and a lasting emotion.",
		},
	}
}

// fallbackImagePromptTemplates are the six base shots every storyboard gets.
// The style placeholder is filled per project via BuildImagePrompt.
var fallbackImagePromptTemplates = []models.ImagePrompt{
	{
		Description: "Wide opening shot that establishes the setting",
		Prompt:      "Wide establishing shot of [setting based on script], [time of day], atmospheric lighting, [style keywords], --ar 16:9",
	},
	{
		Description: "Close-up of the main character",
		Prompt:      "Close-up portrait of the main character, [emotional state], [style keywords], cinematic lighting, shallow depth of field, --ar 16:9",
	},
	{
		Description: "Moment of conflict or tension",
		Prompt:      "Dramatic scene showing conflict, intense emotions, [style keywords], dynamic composition, cinematic lighting, --ar 16:9",
	},
	{
		Description: "Significant detail",
		Prompt:      "Extreme close-up of important detail or object, [style keywords], dramatic lighting, symbolism, --ar 16:9",
	},
	{
		Description: "Climactic turning point",
		Prompt:      "Climactic moment, dramatic action, [style keywords], powerful composition, cinematic lighting, --ar 16:9",
	},
	{
		Description: "Final resolving shot",
		Prompt:      "Final resolving shot, [emotional tone], [style keywords], balanced composition, symbolic lighting, --ar 16:9",
	},
}

var (
	cameraMovements = []string{"static shot", "slow pan", "tracking shot", "dolly zoom", "crane shot"}
	lightingStyles  = []string{"naturalistic", "high contrast", "soft diffused", "dramatic", "silhouette"}
	sceneMoods      = []string{"serene", "tense", "mysterious", "joyful", "melancholic"}
)

const fallbackMusicPrompt = `Create a cinematic soundtrack that evolves through 5 emotional phases:
1. Introduction - a contemplative, expectant atmosphere
2. Development - a crescendo of tension and mystery
3. Conflict - emotional intensity at its peak
4. Climax - a dramatic turning point
5. Resolution - a reflective, cathartic conclusion

The music should incorporate instruments and style drawn from the context of the story, with a total duration of about 2 minutes.`

func fallbackStoryboard(script *models.Script, info *models.StyleInfo, seed int64) *models.Storyboard {
	selected := selectedStyleKeywords(info, seed)

	prompts := make([]models.ImagePrompt, 0, len(fallbackImagePromptTemplates))
	for _, tpl := range fallbackImagePromptTemplates {
		personalized, _ := BuildImagePrompt(tpl, selected)
		prompts = append(prompts, models.ImagePrompt{Description: tpl.Description, Prompt: personalized})
	}

	directions := make([]models.Direction, 0, len(script.Parts))
	for i, part := range script.Parts {
		directions = append(directions, models.Direction{
			SceneNumber:    i + 1,
			Title:          part.Title,
			CameraMovement: cameraMovements[i%len(cameraMovements)],
			Lighting:       lightingStyles[i%len(lightingStyles)],
			Mood:           sceneMoods[i%len(sceneMoods)],
			Notes: fmt.Sprintf("This scene represents the %s of the story. Emphasize the emotion through "+
				"composition and framing.", strings.ToLower(part.Title)),
		})
	}

	return &models.Storyboard{
		MidjourneyPrompts: prompts,
		Directions:        directions,
		MusicPrompt:       fallbackMusicPrompt,
	}
}

func fallbackImages(projectID string, prompts []models.ImagePrompt, selected []string) []models.Image {
	images := make([]models.Image, 0, len(prompts))
	for i, p := range prompts {
		personalized, _ := BuildImagePrompt(p, selected)
		images = append(images, models.Image{
			SceneNumber: i + 1,
			Description: p.Description,
			Prompt:      personalized,
			URL:         fmt.Sprintf("offline://projects/%s/images/scene_%02d.png", projectID, i+1),
		})
	}
	return images
}

func fallbackClips(projectID string, directions []models.Direction, durationSec int) []models.Clip {
	clips := make([]models.Clip, 0, len(directions))
	for _, d := range directions {
		clips = append(clips, models.Clip{
			SceneNumber:    d.SceneNumber,
			CameraMovement: d.CameraMovement,
			URL:            fmt.Sprintf("offline://projects/%s/videos/scene_%02d.mp4", projectID, d.SceneNumber),
			DurationSec:    durationSec,
		})
	}
	return clips
}

func selectedStyleKeywords(info *models.StyleInfo, seed int64) []string {
	if info == nil {
		return nil
	}
	return SelectKeywords(info.Keywords, models.MaxStyleKeywords, seed)
}

// narrationDuration estimates spoken length at a steady 150 words a minute.
func narrationDuration(text string) int {
	words := len(strings.Fields(text))
	return words * 60 / 150
}
