package models

import "fmt"

// Stage identifies one step of the generation pipeline. The value doubles as
// the name of the project field the stage writes.
type Stage string

const (
	StageScript     Stage = "script"
	StageStoryboard Stage = "storyboard"
	StageImages     Stage = "images"
	StageVideos     Stage = "videos"
	StageVoiceover  Stage = "voiceover"
	StageSoundtrack Stage = "soundtrack"
)

var pipelineStages = map[Stage]bool{
	StageScript:     true,
	StageStoryboard: true,
	StageImages:     true,
	StageVideos:     true,
	StageVoiceover:  true,
	StageSoundtrack: true,
}

func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if !pipelineStages[stage] {
		return "", fmt.Errorf("unknown stage %q: %w", s, ErrInvalidArgument)
	}
	return stage, nil
}

// StageInput carries the caller-supplied parameters for one stage run.
// Only the member matching the requested stage is consulted.
type StageInput struct {
	Script     *ScriptInput     `json:"script,omitempty"`
	Images     *ImageInput      `json:"images,omitempty"`
	Video      *VideoInput      `json:"video,omitempty"`
	Voiceover  *VoiceoverInput  `json:"voiceover,omitempty"`
	Soundtrack *SoundtrackInput `json:"soundtrack,omitempty"`
	// Seed drives the deterministic keyword selection used when
	// personalizing image prompts.
	Seed int64 `json:"seed,omitempty"`
}

type ScriptInput struct {
	Prompt string `json:"prompt"`
}

type ImageInput struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type VideoInput struct {
	Resolution string `json:"resolution,omitempty"`
	FPS        int    `json:"fps,omitempty"`
	Format     string `json:"format,omitempty"`
}

type VoiceoverInput struct {
	Voice string `json:"voice,omitempty"`
	Lang  string `json:"lang,omitempty"`
}

type SoundtrackInput struct {
	Mood      string `json:"mood,omitempty"`
	LengthSec int    `json:"length_sec,omitempty"`
}
