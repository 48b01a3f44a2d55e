package models

import "time"

const (
	// MinImagePrompts and MaxImagePrompts bound the storyboard's
	// image-generation prompt list.
	MinImagePrompts = 6
	MaxImagePrompts = 12
)

// ImagePrompt is one image-generation prompt with its human description.
type ImagePrompt struct {
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// Direction is the directing note for one scene. There is exactly one
// direction per script part, in script order.
type Direction struct {
	SceneNumber    int    `json:"sceneNumber"`
	Title          string `json:"title"`
	CameraMovement string `json:"cameraMovement"`
	Lighting       string `json:"lighting"`
	Mood           string `json:"mood"`
	Notes          string `json:"notes"`
}

// Storyboard is the output of the storyboard stage.
type Storyboard struct {
	MidjourneyPrompts []ImagePrompt `json:"midjourneyPrompts"`
	Directions        []Direction   `json:"directions"`
	MusicPrompt       string        `json:"musicPrompt"`
	CreatedAt         time.Time     `json:"createdAt"`
}

func (*Storyboard) StageField() string { return string(StageStoryboard) }
