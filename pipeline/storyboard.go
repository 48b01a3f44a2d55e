package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aida-server/models"
)

// StoryboardStage develops the script into image prompts, per-scene
// directions and a music prompt.
type StoryboardStage struct {
	gen Generator
}

func (s StoryboardStage) Stage() models.Stage { return models.StageStoryboard }

func (s StoryboardStage) Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error) {
	if project.Script == nil || len(project.Script.Parts) == 0 {
		return nil, fmt.Errorf("storyboard stage requires a script: %w", models.ErrPreconditionFailed)
	}
	info := project.StyleInfo()

	prompt, err := BuildStoryboardPrompt(project.Script, info)
	if err != nil {
		return nil, err
	}

	var board *models.Storyboard
	if s.gen == nil {
		board = fallbackStoryboard(project.Script, info, in.Seed)
	} else {
		resp, err := s.gen.Generate(ctx, Request{
			Stage:  models.StageStoryboard,
			Prompt: prompt,
			Params: map[string]interface{}{
				"scene_count": len(project.Script.Parts),
			},
		})
		if err != nil {
			return nil, generationFailed(models.StageStoryboard, err)
		}
		board = &models.Storyboard{}
		if err := json.Unmarshal(resp.JSON, board); err != nil {
			return nil, generationFailed(models.StageStoryboard, fmt.Errorf("unparseable storyboard payload"))
		}
		if err := validateStoryboard(board, len(project.Script.Parts)); err != nil {
			return nil, generationFailed(models.StageStoryboard, err)
		}
	}

	board.CreatedAt = time.Now().UTC()
	return board, nil
}

func validateStoryboard(board *models.Storyboard, sceneCount int) error {
	n := len(board.MidjourneyPrompts)
	if n < models.MinImagePrompts || n > models.MaxImagePrompts {
		return fmt.Errorf("expected %d-%d image prompts, got %d",
			models.MinImagePrompts, models.MaxImagePrompts, n)
	}
	if len(board.Directions) != sceneCount {
		return fmt.Errorf("expected %d directions, got %d", sceneCount, len(board.Directions))
	}
	for i := range board.Directions {
		if board.Directions[i].SceneNumber == 0 {
			board.Directions[i].SceneNumber = i + 1
		}
	}
	if board.MusicPrompt == "" {
		return fmt.Errorf("storyboard is missing the music prompt")
	}
	return nil
}
