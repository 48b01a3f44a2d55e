package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aida-server/models"
)

const defaultVoice = "narrator"

// VoiceoverStage narrates the script.
type VoiceoverStage struct {
	gen Generator
}

func (s VoiceoverStage) Stage() models.Stage { return models.StageVoiceover }

func (s VoiceoverStage) Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error) {
	if project.Script == nil || len(project.Script.Parts) == 0 {
		return nil, fmt.Errorf("voiceover stage requires a script: %w", models.ErrPreconditionFailed)
	}

	voice, lang := defaultVoice, "en"
	if in.Voiceover != nil {
		if v := strings.TrimSpace(in.Voiceover.Voice); v != "" {
			voice = v
		}
		if in.Voiceover.Lang != "" {
			lang = in.Voiceover.Lang
		}
	}

	prompt, err := BuildVoiceoverPrompt(project.Script, voice)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(project.Script.Parts))
	for _, part := range project.Script.Parts {
		contents = append(contents, part.Content)
	}
	text := strings.Join(contents, "\n")

	url := fmt.Sprintf("offline://projects/%s/voiceover.mp3", project.ID)
	duration := narrationDuration(text)
	if s.gen != nil {
		resp, err := s.gen.Generate(ctx, Request{
			Stage:  models.StageVoiceover,
			Prompt: prompt,
			Params: map[string]interface{}{
				"voice": voice,
				"lang":  lang,
				"text":  text,
			},
		})
		if err != nil {
			return nil, generationFailed(models.StageVoiceover, err)
		}
		if len(resp.Assets) == 0 {
			return nil, generationFailed(models.StageVoiceover, fmt.Errorf("backend returned no audio"))
		}
		url = resp.Assets[0].URL
		if resp.Assets[0].DurationSec > 0 {
			duration = resp.Assets[0].DurationSec
		}
	}

	return &models.Voiceover{
		Voice:       voice,
		Text:        text,
		URL:         url,
		DurationSec: duration,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
