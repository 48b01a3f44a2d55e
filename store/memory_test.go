package store

import (
	"context"
	"testing"
	"time"

	"aida-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(id, owner string) *models.Project {
	now := time.Now()
	return &models.Project{
		ID:        id,
		OwnerID:   owner,
		Title:     "t",
		Status:    models.ProjectStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newProject("p-1", "o-1")))

	got, err := st.Get(ctx, "p-1")
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := st.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "t", again.Title)
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStoreUpdateFieldFlipsDraft(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newProject("p-1", "o-1")))

	script := &models.Script{Prompt: "x", Parts: []models.ScriptPart{{Title: "Introduction", Content: "c"}}}
	require.NoError(t, st.UpdateField(ctx, "p-1", "script", script))

	got, err := st.Get(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got.Script)
	assert.Equal(t, models.ProjectStatusInProgress, got.Status)

	// a later write must not touch an already completed status
	require.NoError(t, st.UpdateField(ctx, "p-1", "status", models.ProjectStatusCompleted))
	require.NoError(t, st.UpdateField(ctx, "p-1", "script", script))
	got, err = st.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusCompleted, got.Status)
}

func TestMemoryStoreUpdateFieldRejectsUnknownField(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newProject("p-1", "o-1")))

	err := st.UpdateField(ctx, "p-1", "ownerId", "someone-else")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	err = st.UpdateField(ctx, "missing", "script", &models.Script{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStoreUpdateFieldReplacesWholesale(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newProject("p-1", "o-1")))

	first := &models.Storyboard{
		MidjourneyPrompts: []models.ImagePrompt{{Description: "one", Prompt: "one"}},
		MusicPrompt:       "first music",
	}
	second := &models.Storyboard{
		MidjourneyPrompts: []models.ImagePrompt{{Description: "two", Prompt: "two"}},
	}
	require.NoError(t, st.UpdateField(ctx, "p-1", "storyboard", first))
	require.NoError(t, st.UpdateField(ctx, "p-1", "storyboard", second))

	got, err := st.Get(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, got.Storyboard.MidjourneyPrompts, 1)
	assert.Equal(t, "two", got.Storyboard.MidjourneyPrompts[0].Description)
	assert.Empty(t, got.Storyboard.MusicPrompt, "fields of the old value must not leak through")
}

func TestMemoryStoreListByOwner(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newProject("p-1", "o-1")))
	require.NoError(t, st.Create(ctx, newProject("p-2", "o-1")))
	require.NoError(t, st.Create(ctx, newProject("p-3", "o-2")))

	got, err := st.ListByOwner(ctx, "o-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = st.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreDeleteRemovesTasks(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Create(ctx, newProject("p-1", "o-1")))

	task := &models.Task{ID: "t-1", ProjectID: "p-1", OwnerID: "o-1", Stage: models.StageScript, Status: models.TaskStatusPending}
	require.NoError(t, st.CreateTask(ctx, task))

	require.NoError(t, st.Delete(ctx, "p-1"))

	_, err := st.Get(ctx, "p-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = st.GetTask(ctx, "t-1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, st.Delete(ctx, "p-1"), models.ErrNotFound)
}

func TestMemoryStoreTaskLifecycle(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	tasks := st.Tasks()

	task := &models.Task{ID: "t-1", ProjectID: "p-1", OwnerID: "o-1", Stage: models.StageScript, Status: models.TaskStatusPending}
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, tasks.UpdateStatus(ctx, "t-1", models.TaskStatusProcessing, 10, "started", ""))
	got, err := tasks.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusProcessing, got.Status)
	assert.Equal(t, 10, got.Progress)

	require.NoError(t, tasks.UpdateStatus(ctx, "t-1", models.TaskStatusFailed, 100, "failed", "backend down"))
	got, err = tasks.Get(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "backend down", got.Error)

	listed, err := tasks.ListByProject(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	assert.ErrorIs(t, tasks.UpdateStatus(ctx, "missing", models.TaskStatusFailed, 0, "", ""), models.ErrNotFound)
}
