package api

import (
	"fmt"
	"net/http"
	"time"

	"aida-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RunStage accepts a stage execution request. With a queue wired it creates
// a pending task, enqueues it and answers 202; without one (offline setups)
// it runs the stage inline and answers 200 with the updated project.
func (h *Handler) RunStage(c *gin.Context) {
	stage, err := models.ParseStage(c.Param("stage"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	var input models.StageInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			h.writeError(c, fmt.Errorf("decode body: %v: %w", err, models.ErrInvalidArgument))
			return
		}
	}

	project, err := h.loadOwned(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.queue == nil {
		updated, _, err := h.orch.ExecuteStage(c.Request.Context(), project.ID, stage, input, callerID(c))
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"project": updated})
		return
	}

	now := time.Now()
	task := models.Task{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		OwnerID:   callerID(c),
		Stage:     stage,
		Status:    models.TaskStatusPending,
		Message:   fmt.Sprintf("%s generation queued", stage),
		Input:     input,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.tasks.Create(c.Request.Context(), &task); err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.queue.EnqueueStageTask(task.ID); err != nil {
		markErr := h.tasks.UpdateStatus(c.Request.Context(), task.ID, models.TaskStatusFailed, 0, "enqueue failed", err.Error())
		if markErr != nil {
			h.log.Error().Err(markErr).Str("task_id", task.ID).Msg("mark task failed")
		}
		h.writeError(c, err)
		return
	}
	h.log.Info().Str("task_id", task.ID).Str("project_id", project.ID).Str("stage", string(stage)).Msg("stage task enqueued")
	c.JSON(http.StatusAccepted, gin.H{"task": task})
}

func (h *Handler) ListProjectTasks(c *gin.Context) {
	project, err := h.loadOwned(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	tasks, err := h.tasks.ListByProject(c.Request.Context(), project.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
