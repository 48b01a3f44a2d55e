package pipeline

import (
	"context"
	"fmt"
	"time"

	"aida-server/models"
)

const (
	defaultClipDurationSec = 4
	defaultResolution      = "1280x720"
	defaultFPS             = 24
)

// VideosStage animates the generated images into one clip per scene,
// following the storyboard directions.
type VideosStage struct {
	gen Generator
}

func (s VideosStage) Stage() models.Stage { return models.StageVideos }

func (s VideosStage) Run(ctx context.Context, project *models.Project, in models.StageInput) (StageOutput, error) {
	if project.Images == nil || len(project.Images.Images) == 0 {
		return nil, fmt.Errorf("videos stage requires generated images: %w", models.ErrPreconditionFailed)
	}
	if project.Storyboard == nil || len(project.Storyboard.Directions) == 0 {
		return nil, fmt.Errorf("videos stage requires storyboard directions: %w", models.ErrPreconditionFailed)
	}
	directions := project.Storyboard.Directions

	prompt, err := BuildVideoPrompt(project.Images, directions)
	if err != nil {
		return nil, err
	}

	resolution, fps, format := defaultResolution, defaultFPS, "mp4"
	if in.Video != nil {
		if in.Video.Resolution != "" {
			resolution = in.Video.Resolution
		}
		if in.Video.FPS > 0 {
			fps = in.Video.FPS
		}
		if in.Video.Format != "" {
			format = in.Video.Format
		}
	}

	var clips []models.Clip
	if s.gen == nil {
		clips = fallbackClips(project.ID, directions, defaultClipDurationSec)
	} else {
		imageURLs := make([]string, 0, len(project.Images.Images))
		for _, img := range project.Images.Images {
			imageURLs = append(imageURLs, img.URL)
		}
		resp, err := s.gen.Generate(ctx, Request{
			Stage:  models.StageVideos,
			Prompt: prompt,
			Params: map[string]interface{}{
				"images":     imageURLs,
				"resolution": resolution,
				"fps":        fps,
				"format":     format,
			},
		})
		if err != nil {
			return nil, generationFailed(models.StageVideos, err)
		}
		if len(resp.Assets) != len(directions) {
			return nil, generationFailed(models.StageVideos,
				fmt.Errorf("expected %d clips, got %d", len(directions), len(resp.Assets)))
		}
		clips = make([]models.Clip, 0, len(directions))
		for i, asset := range resp.Assets {
			duration := asset.DurationSec
			if duration <= 0 {
				duration = defaultClipDurationSec
			}
			clips = append(clips, models.Clip{
				SceneNumber:    directions[i].SceneNumber,
				CameraMovement: directions[i].CameraMovement,
				URL:            asset.URL,
				DurationSec:    duration,
			})
		}
	}

	return &models.VideoSet{
		Clips:     clips,
		CreatedAt: time.Now().UTC(),
	}, nil
}
