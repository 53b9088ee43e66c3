package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/taskdeck-simple/middleware"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
	}

	// Everything below requires an authenticated principal
	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware())

	// Project endpoints
	projectGroup := authed.Group("/projects")
	{
		projectGroup.GET("", ListProjects)
		projectGroup.POST("", CreateProject)
		projectGroup.GET("/:id", GetProject)
		projectGroup.PUT("/:id", UpdateProject)
		projectGroup.DELETE("/:id", DeleteProject)
		projectGroup.POST("/:id/archive", ArchiveProject)
		projectGroup.POST("/:id/unarchive", UnarchiveProject)

		// Membership
		projectGroup.GET("/:id/members", ListMembers)
		projectGroup.POST("/:id/members", AddMember)
		projectGroup.DELETE("/:id/members/:userId", RemoveMember)

		// Task listing and creation are project-scoped
		projectGroup.GET("/:id/tasks", ListTasks)
		projectGroup.POST("/:id/tasks", CreateTask)
	}

	// Task endpoints
	taskGroup := authed.Group("/tasks")
	{
		taskGroup.GET("/:id", GetTask)
		taskGroup.PUT("/:id", UpdateTask)
		taskGroup.DELETE("/:id", DeleteTask)
		taskGroup.PUT("/:id/status", UpdateTaskStatus)
		taskGroup.POST("/:id/assign", AssignTask)
		taskGroup.POST("/:id/unassign", UnassignTask)
		taskGroup.GET("/:id/comments", ListComments)
		taskGroup.POST("/:id/comments", CreateComment)
	}

	// Comment endpoints
	commentGroup := authed.Group("/comments")
	{
		commentGroup.GET("/search", SearchComments)
		commentGroup.PUT("/:id", UpdateComment)
		commentGroup.DELETE("/:id", DeleteComment)
	}

	// Notification endpoints
	notificationGroup := authed.Group("/notifications")
	{
		notificationGroup.GET("", ListNotifications)
		notificationGroup.POST("/:id/read", MarkNotificationRead)
		notificationGroup.POST("/read-all", MarkAllNotificationsRead)
		notificationGroup.POST("/purge", PurgeNotifications)
	}
}
