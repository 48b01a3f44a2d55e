package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aida-server/models"

	"github.com/rs/zerolog"
)

// ScriptStage turns the user's prompt into a five-part script.
type ScriptStage struct {
	gen Generator
	log zerolog.Logger
}

func (s ScriptStage) Stage() models.Stage { return models.StageScript }

func (s ScriptStage) Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error) {
	if in.Script == nil || strings.TrimSpace(in.Script.Prompt) == "" {
		return nil, fmt.Errorf("script stage requires a non-empty prompt: %w", models.ErrInvalidArgument)
	}
	userPrompt := strings.TrimSpace(in.Script.Prompt)
	info := project.StyleInfo()

	prompt, err := BuildScriptPrompt(userPrompt, info)
	if err != nil {
		return nil, err
	}

	var parts []models.ScriptPart
	if s.gen == nil {
		parts = fallbackScriptParts(userPrompt)
	} else {
		resp, err := s.gen.Generate(ctx, Request{
			Stage:  models.StageScript,
			Prompt: prompt,
			Params: map[string]interface{}{
				"user_prompt": userPrompt,
				"part_count":  models.ScriptPartCount,
			},
		})
		if err != nil {
			return nil, generationFailed(models.StageScript, err)
		}
		var payload struct {
			Parts []models.ScriptPart `json:"parts"`
		}
		if err := json.Unmarshal(resp.JSON, &payload); err != nil || len(payload.Parts) == 0 {
			return nil, generationFailed(models.StageScript, fmt.Errorf("backend returned no script parts"))
		}
		parts = payload.Parts
	}

	// soft quality gate, logged but never enforced
	for i, part := range parts {
		if len(part.Content) < models.ScriptPartMinChars {
			s.log.Warn().
				Str("project_id", project.ID).
				Int("part", i+1).
				Int("length", len(part.Content)).
				Msg("script part shorter than quality target")
		}
	}

	return &models.Script{
		Prompt:    userPrompt,
		StyleInfo: info,
		Parts:     parts,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func generationFailed(stage models.Stage, err error) error {
	return fmt.Errorf("%s generation: %v: %w", stage, err, models.ErrGenerationFailed)
}
