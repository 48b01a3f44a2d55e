package pipeline

import (
	"context"
	"fmt"
	"time"

	"aida-server/models"
)

const defaultImageSize = 1024

// ImagesStage renders one image per storyboard prompt.
type ImagesStage struct {
	gen Generator
}

func (s ImagesStage) Stage() models.Stage { return models.StageImages }

func (s ImagesStage) Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error) {
	if project.Storyboard == nil || len(project.Storyboard.MidjourneyPrompts) == 0 {
		return nil, fmt.Errorf("images stage requires a storyboard: %w", models.ErrPreconditionFailed)
	}
	info := project.StyleInfo()
	selected := selectedStyleKeywords(info, in.Seed)
	templates := project.Storyboard.MidjourneyPrompts

	width, height := defaultImageSize, defaultImageSize
	if in.Images != nil {
		if in.Images.Width > 0 {
			width = in.Images.Width
		}
		if in.Images.Height > 0 {
			height = in.Images.Height
		}
	}

	var images []models.Image
	if s.gen == nil {
		images = fallbackImages(project.ID, templates, selected)
	} else {
		prompts := make([]string, 0, len(templates))
		for _, tpl := range templates {
			p, err := BuildImagePrompt(tpl, selected)
			if err != nil {
				return nil, err
			}
			prompts = append(prompts, p)
		}
		resp, err := s.gen.Generate(ctx, Request{
			Stage:  models.StageImages,
			Prompt: prompts[0],
			Params: map[string]interface{}{
				"prompts": prompts,
				"width":   width,
				"height":  height,
			},
		})
		if err != nil {
			return nil, generationFailed(models.StageImages, err)
		}
		if len(resp.Assets) != len(prompts) {
			return nil, generationFailed(models.StageImages,
				fmt.Errorf("expected %d images, got %d", len(prompts), len(resp.Assets)))
		}
		images = make([]models.Image, 0, len(prompts))
		for i, asset := range resp.Assets {
			images = append(images, models.Image{
				SceneNumber: i + 1,
				Description: templates[i].Description,
				Prompt:      prompts[i],
				URL:         asset.URL,
			})
		}
	}

	return &models.ImageSet{
		Images:    images,
		CreatedAt: time.Now().UTC(),
	}, nil
}
