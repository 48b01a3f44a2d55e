package api

import (
	"fmt"
	"net/http"
	"time"

	"aida-server/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) GetTaskStatus(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if task.OwnerID != callerID(c) {
		h.writeError(c, fmt.Errorf("task %s: %w", task.ID, models.ErrUnauthorized))
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// TaskProgressWebSocket streams task progress over a websocket. The worker
// writes progress to the store; this handler polls the store once a second
// and pushes on change, closing after a terminal status.
func (h *Handler) TaskProgressWebSocket(c *gin.Context) {
	taskID := c.Param("task_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.writeError(c, fmt.Errorf("websocket upgrade: %w", err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	task, err := h.tasks.Get(ctx, taskID)
	if err != nil {
		_ = conn.WriteJSON(gin.H{"error": err.Error()})
		return
	}
	_ = conn.WriteJSON(task)
	if isTerminal(task.Status) {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	prevStatus, prevProgress := task.Status, task.Progress
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cur, err := h.tasks.Get(ctx, taskID)
		if err != nil {
			continue
		}
		if cur.Status != prevStatus || cur.Progress != prevProgress {
			if err := conn.WriteJSON(cur); err != nil {
				return
			}
			prevStatus, prevProgress = cur.Status, cur.Progress
		}
		if isTerminal(cur.Status) {
			return
		}
	}
}

func isTerminal(status string) bool {
	return status == models.TaskStatusSuccess ||
		status == models.TaskStatusFailed ||
		status == models.TaskStatusCancelled
}
