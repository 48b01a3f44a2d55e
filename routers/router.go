package routers

import (
	"aida-server/routers/api"

	"github.com/gin-gonic/gin"
)

func InitRouter(h *api.Handler) *gin.Engine {
	r := gin.Default()
	v1 := r.Group("/v1/api")
	{
		v1.POST("/projects", h.CreateProject)
		v1.GET("/projects", h.ListProjects)
		v1.GET("/projects/:project_id", h.GetProject)
		v1.PUT("/projects/:project_id", h.UpdateProject)
		v1.DELETE("/projects/:project_id", h.DeleteProject)
		v1.PUT("/projects/:project_id/style", h.SetStyle)
		v1.POST("/projects/:project_id/complete", h.CompleteProject)
		v1.POST("/projects/:project_id/stages/:stage", h.RunStage)
		v1.GET("/projects/:project_id/tasks", h.ListProjectTasks)
		v1.GET("/tasks/:task_id", h.GetTaskStatus)
		v1.GET("/styles", h.ListStyles)
		v1.GET("/styles/keywords", h.KeywordSuggestions)
	}
	r.GET("/tasks/:task_id/ws", h.TaskProgressWebSocket)
	return r
}
