// Package store owns persisted project and task state. Stage outputs are
// written through UpdateField with whole-field replace semantics: each write
// replaces the entire named field atomically, so concurrent writers to the
// same field are last-write-wins and never merge partial data.
package store

import (
	"context"

	"aida-server/models"
)

type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)
	// UpdateField atomically replaces one top-level field and bumps
	// updatedAt. Writing a stage field moves a draft project to
	// in_progress in the same statement.
	UpdateField(ctx context.Context, id, field string, value interface{}) error
	UpdateMeta(ctx context.Context, id, title, description string) error
	Delete(ctx context.Context, id string) error
}

type TaskStore interface {
	Create(ctx context.Context, t *models.Task) error
	Get(ctx context.Context, id string) (*models.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]models.Task, error)
	UpdateStatus(ctx context.Context, id, status string, progress int, message, errMsg string) error
}

// progressFields are the fields whose first write moves a project out of
// draft. Style selection counts as pipeline progress.
var progressFields = map[string]bool{
	"style":                        true,
	string(models.StageScript):     true,
	string(models.StageStoryboard): true,
	string(models.StageImages):     true,
	string(models.StageVideos):     true,
	string(models.StageVoiceover):  true,
	string(models.StageSoundtrack): true,
}

var writableFields = map[string]bool{
	"style":                        true,
	"status":                       true,
	string(models.StageScript):     true,
	string(models.StageStoryboard): true,
	string(models.StageImages):     true,
	string(models.StageVideos):     true,
	string(models.StageVoiceover):  true,
	string(models.StageSoundtrack): true,
}
