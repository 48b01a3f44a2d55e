package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aida-server/models"
)

const (
	defaultMood             = "cinematic"
	defaultTrackDurationSec = 120
)

// SoundtrackStage scores the video from the storyboard's music prompt.
type SoundtrackStage struct {
	gen Generator
}

func (s SoundtrackStage) Stage() models.Stage { return models.StageSoundtrack }

func (s SoundtrackStage) Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error) {
	if project.Storyboard == nil || strings.TrimSpace(project.Storyboard.MusicPrompt) == "" {
		return nil, fmt.Errorf("soundtrack stage requires a storyboard: %w", models.ErrPreconditionFailed)
	}

	mood, length := defaultMood, defaultTrackDurationSec
	if in.Soundtrack != nil {
		if m := strings.TrimSpace(in.Soundtrack.Mood); m != "" {
			mood = m
		}
		if in.Soundtrack.LengthSec > 0 {
			length = in.Soundtrack.LengthSec
		}
	}

	prompt, err := BuildSoundtrackPrompt(project.Storyboard.MusicPrompt, mood, length)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("offline://projects/%s/soundtrack.mp3", project.ID)
	duration := length
	if s.gen != nil {
		resp, err := s.gen.Generate(ctx, Request{
			Stage:  models.StageSoundtrack,
			Prompt: prompt,
			Params: map[string]interface{}{
				"mood":       mood,
				"length_sec": length,
			},
		})
		if err != nil {
			return nil, generationFailed(models.StageSoundtrack, err)
		}
		if len(resp.Assets) == 0 {
			return nil, generationFailed(models.StageSoundtrack, fmt.Errorf("backend returned no audio"))
		}
		url = resp.Assets[0].URL
		if resp.Assets[0].DurationSec > 0 {
			duration = resp.Assets[0].DurationSec
		}
	}

	return &models.Soundtrack{
		Prompt:      prompt,
		Mood:        mood,
		URL:         url,
		DurationSec: duration,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
