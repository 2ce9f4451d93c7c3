package http

import (
	"delegate/internal/adapter/http/handlers"
	"delegate/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler, orgHandler *handlers.OrgHandler) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
	}

	authed := api.Group("")
	authed.Use(middleware.ActorMiddleware())
	{
		authed.GET("/tasks", taskHandler.ListTasks)
		authed.POST("/tasks", taskHandler.CreateTask)
		authed.GET("/tasks/:id", taskHandler.GetTask)
		authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
		authed.POST("/tasks/:id/subtasks", taskHandler.CreateSubtask)
		authed.POST("/tasks/:id/accept", taskHandler.AcceptTask)
		authed.POST("/tasks/:id/reject", taskHandler.RejectTask)
		authed.POST("/tasks/:id/complete", taskHandler.CompleteTask)
		authed.PATCH("/tasks/:id/deadline", taskHandler.EditDeadline)
		authed.PATCH("/tasks/:id/assignee", taskHandler.EditAssignee)
		authed.GET("/org/users", orgHandler.ListVisibleUsers)
	}
}
