package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-list-api/internal/middleware"
)

// RouterDeps holds everything the HTTP layer needs.
type RouterDeps struct {
	AuthHandler      *AuthHandler
	TaskHandler      *TaskHandler
	Tokens           middleware.TokenVerifier
	Logger           *slog.Logger
	OperationTimeout time.Duration
}

// NewRouter registers every route on a fresh engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger), middleware.RequestLogger(deps.Logger))
	if deps.OperationTimeout > 0 {
		r.Use(middleware.OperationTimeout(deps.OperationTimeout))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task List API is running",
		})
	})

	requireAuth := middleware.RequireAuth(deps.Tokens, deps.Logger)

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
		auth.GET("/me", requireAuth, deps.AuthHandler.GetCurrentUser)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", deps.TaskHandler.ListTasks)
		tasks.POST("", deps.TaskHandler.CreateTask)
		tasks.POST("/generate", deps.TaskHandler.GenerateTasks)
		tasks.GET("/:id", deps.TaskHandler.GetTask)
		tasks.PUT("/:id", deps.TaskHandler.UpdateTask)
		tasks.POST("/:id/complete", deps.TaskHandler.CompleteTask)
		tasks.DELETE("/:id", deps.TaskHandler.DeleteTask)
	}

	return r
}
