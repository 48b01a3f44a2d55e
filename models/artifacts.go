package models

import "time"

// Outputs of the media stages. Each is optional on the project until its
// stage runs and is replaced wholesale on a re-run.

type Image struct {
	SceneNumber int    `json:"sceneNumber"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	URL         string `json:"url"`
}

type ImageSet struct {
	Images    []Image   `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
}

func (*ImageSet) StageField() string { return string(StageImages) }

type Clip struct {
	SceneNumber    int    `json:"sceneNumber"`
	CameraMovement string `json:"cameraMovement"`
	URL            string `json:"url"`
	DurationSec    int    `json:"durationSec"`
}

type VideoSet struct {
	Clips     []Clip    `json:"clips"`
	CreatedAt time.Time `json:"createdAt"`
}

func (*VideoSet) StageField() string { return string(StageVideos) }

type Voiceover struct {
	Voice       string    `json:"voice"`
	Text        string    `json:"text"`
	URL         string    `json:"url"`
	DurationSec int       `json:"durationSec"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (*Voiceover) StageField() string { return string(StageVoiceover) }

type Soundtrack struct {
	Prompt      string    `json:"prompt"`
	Mood        string    `json:"mood"`
	URL         string    `json:"url"`
	DurationSec int       `json:"durationSec"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (*Soundtrack) StageField() string { return string(StageSoundtrack) }
