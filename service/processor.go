package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"aida-server/models"
	"aida-server/pipeline"
	"aida-server/store"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// StageWorker consumes queued stage tasks and drives the orchestrator.
type StageWorker struct {
	tasks store.TaskStore
	orch  *pipeline.Orchestrator
	log   zerolog.Logger
	srv   *asynq.Server
}

func NewStageWorker(tasks store.TaskStore, orch *pipeline.Orchestrator, log zerolog.Logger) *StageWorker {
	return &StageWorker{tasks: tasks, orch: orch, log: log}
}

// Start launches the queue consumer in the background.
func (w *StageWorker) Start(redisOpt asynq.RedisClientOpt, concurrency int) {
	w.srv = asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStageTask, w.handleStageTask)

	go func() {
		if err := w.srv.Run(mux); err != nil {
			w.log.Error().Err(err).Msg("stage worker stopped")
		}
	}()
}

func (w *StageWorker) Shutdown() {
	if w.srv != nil {
		w.srv.Shutdown()
	}
}

func (w *StageWorker) handleStageTask(ctx context.Context, t *asynq.Task) error {
	var payload StagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal stage payload: %v: %w", err, asynq.SkipRetry)
	}

	task, err := w.tasks.Get(ctx, payload.TaskID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("task %s: %v: %w", payload.TaskID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("load task %s: %w", payload.TaskID, err)
	}
	if task.Status == models.TaskStatusSuccess || task.Status == models.TaskStatusCancelled {
		return nil
	}

	log := w.log.With().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Str("stage", string(task.Stage)).
		Logger()

	if err := w.tasks.UpdateStatus(ctx, task.ID, models.TaskStatusProcessing, 10, "generation started", ""); err != nil {
		return fmt.Errorf("mark task processing: %w", err)
	}

	_, _, err = w.orch.ExecuteStage(ctx, task.ProjectID, task.Stage, task.Input, task.OwnerID)
	if err != nil {
		markErr := w.tasks.UpdateStatus(ctx, task.ID, models.TaskStatusFailed, 100, "generation failed", err.Error())
		if markErr != nil {
			log.Error().Err(markErr).Msg("mark task failed")
		}
		// Business rejections will fail identically on retry. Transient
		// generation and write errors are worth another attempt; the stage
		// write is a whole-field replace, so a retry after a partial run
		// is safe.
		if isPermanent(err) {
			log.Warn().Err(err).Msg("stage task rejected")
			return fmt.Errorf("stage %s: %v: %w", task.Stage, err, asynq.SkipRetry)
		}
		log.Error().Err(err).Msg("stage task failed")
		return err
	}

	if err := w.tasks.UpdateStatus(ctx, task.ID, models.TaskStatusSuccess, 100, "generation finished", ""); err != nil {
		return fmt.Errorf("mark task finished: %w", err)
	}
	log.Info().Msg("stage task finished")
	return nil
}

func isPermanent(err error) bool {
	return errors.Is(err, models.ErrInvalidArgument) ||
		errors.Is(err, models.ErrPreconditionFailed) ||
		errors.Is(err, models.ErrUnauthorized) ||
		errors.Is(err, models.ErrNotFound)
}
