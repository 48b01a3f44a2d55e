package api

import (
	"errors"
	"net/http"

	"aida-server/models"
	"aida-server/pipeline"
	"aida-server/service"
	"aida-server/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler carries the wired collaborators for all API routes. A nil queue
// means stages run synchronously inside the request.
type Handler struct {
	store store.ProjectStore
	tasks store.TaskStore
	orch  *pipeline.Orchestrator
	queue *service.Queue
	log   zerolog.Logger
}

func NewHandler(st store.ProjectStore, tasks store.TaskStore, orch *pipeline.Orchestrator, queue *service.Queue, log zerolog.Logger) *Handler {
	return &Handler{store: st, tasks: tasks, orch: orch, queue: queue, log: log}
}

// callerID identifies the requesting user. Authentication happens upstream;
// the gateway injects the verified identity as a header.
func callerID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrPreconditionFailed):
		status = http.StatusPreconditionFailed
	case errors.Is(err, models.ErrWriteConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrGenerationFailed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
