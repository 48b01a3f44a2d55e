package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"aida-server/models"
	"aida-server/pipeline"
	"aida-server/store"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStageWorker(t *testing.T) (*StageWorker, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	orch := pipeline.New(st, nil, zerolog.Nop())
	return NewStageWorker(st.Tasks(), orch, zerolog.Nop()), st
}

func stagePayload(t *testing.T, taskID string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(StagePayload{TaskID: taskID})
	require.NoError(t, err)
	return asynq.NewTask(TypeStageTask, payload)
}

func TestHandleStageTaskSuccess(t *testing.T) {
	w, st := newStageWorker(t)
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, &models.Project{ID: "p-1", OwnerID: "o-1", Status: models.ProjectStatusDraft}))
	task := &models.Task{
		ID: "t-1", ProjectID: "p-1", OwnerID: "o-1",
		Stage:  models.StageScript,
		Status: models.TaskStatusPending,
		Input:  models.StageInput{Script: &models.ScriptInput{Prompt: "a night train"}},
	}
	require.NoError(t, st.CreateTask(ctx, task))

	require.NoError(t, w.handleStageTask(ctx, stagePayload(t, "t-1")))

	got, err := st.GetTask(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusSuccess, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.False(t, got.FinishedAt.IsZero())

	project, err := st.Get(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, project.Script)
}

func TestHandleStageTaskBusinessRejectionSkipsRetry(t *testing.T) {
	w, st := newStageWorker(t)
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, &models.Project{ID: "p-1", OwnerID: "o-1", Status: models.ProjectStatusDraft}))
	// storyboard without a script is rejected, and retrying cannot change that
	task := &models.Task{
		ID: "t-1", ProjectID: "p-1", OwnerID: "o-1",
		Stage:  models.StageStoryboard,
		Status: models.TaskStatusPending,
	}
	require.NoError(t, st.CreateTask(ctx, task))

	err := w.handleStageTask(ctx, stagePayload(t, "t-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	got, getErr := st.GetTask(ctx, "t-1")
	require.NoError(t, getErr)
	assert.Equal(t, models.TaskStatusFailed, got.Status)
	assert.NotEmpty(t, got.Error)
}

func TestHandleStageTaskBadPayloadSkipsRetry(t *testing.T) {
	w, _ := newStageWorker(t)

	err := w.handleStageTask(context.Background(), asynq.NewTask(TypeStageTask, []byte("not json")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleStageTaskMissingTaskSkipsRetry(t *testing.T) {
	w, _ := newStageWorker(t)

	err := w.handleStageTask(context.Background(), stagePayload(t, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleStageTaskAlreadyFinishedIsNoop(t *testing.T) {
	w, st := newStageWorker(t)
	ctx := context.Background()

	task := &models.Task{ID: "t-1", ProjectID: "p-1", OwnerID: "o-1", Stage: models.StageScript, Status: models.TaskStatusSuccess}
	require.NoError(t, st.CreateTask(ctx, task))

	assert.NoError(t, w.handleStageTask(ctx, stagePayload(t, "t-1")))
}
