package api

import (
	"fmt"
	"net/http"
	"time"

	"aida-server/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("decode body: %v: %w", err, models.ErrInvalidArgument))
		return
	}
	owner := callerID(c)
	if owner == "" {
		h.writeError(c, fmt.Errorf("missing X-User-ID header: %w", models.ErrUnauthorized))
		return
	}
	if req.Title == "" {
		h.writeError(c, fmt.Errorf("title is required: %w", models.ErrInvalidArgument))
		return
	}

	now := time.Now()
	project := models.Project{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProjectStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.Create(c.Request.Context(), &project); err != nil {
		h.writeError(c, err)
		return
	}
	h.log.Info().Str("project_id", project.ID).Str("owner_id", owner).Msg("project created")
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.loadOwned(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *Handler) ListProjects(c *gin.Context) {
	owner := callerID(c)
	if owner == "" {
		h.writeError(c, fmt.Errorf("missing X-User-ID header: %w", models.ErrUnauthorized))
		return
	}
	projects, err := h.store.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("decode body: %v: %w", err, models.ErrInvalidArgument))
		return
	}
	project, err := h.loadOwned(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if req.Title == "" {
		req.Title = project.Title
	}
	if err := h.store.UpdateMeta(c.Request.Context(), project.ID, req.Title, req.Description); err != nil {
		h.writeError(c, err)
		return
	}
	updated, err := h.store.Get(c.Request.Context(), project.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": updated})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	project, err := h.loadOwned(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.store.Delete(c.Request.Context(), project.ID); err != nil {
		h.writeError(c, err)
		return
	}
	h.log.Info().Str("project_id", project.ID).Msg("project deleted")
	c.JSON(http.StatusOK, gin.H{"deleted": project.ID})
}

func (h *Handler) SetStyle(c *gin.Context) {
	var style models.Style
	if err := c.ShouldBindJSON(&style); err != nil {
		h.writeError(c, fmt.Errorf("decode body: %v: %w", err, models.ErrInvalidArgument))
		return
	}
	project, err := h.orch.SetStyle(c.Request.Context(), c.Param("project_id"), &style, callerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *Handler) CompleteProject(c *gin.Context) {
	project, err := h.orch.Complete(c.Request.Context(), c.Param("project_id"), callerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// loadOwned fetches the project from the path param and enforces ownership.
func (h *Handler) loadOwned(c *gin.Context) (*models.Project, error) {
	project, err := h.store.Get(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		return nil, err
	}
	if project.OwnerID != callerID(c) {
		return nil, fmt.Errorf("project %s: %w", project.ID, models.ErrUnauthorized)
	}
	return project, nil
}
