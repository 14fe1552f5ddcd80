package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vilafit/coachplan-backend/internal/handlers"
	"github.com/vilafit/coachplan-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	AssignmentHandler *handlers.AssignmentHandler
	CatalogHandler    *handlers.CatalogHandler
	PlannerHandler    *handlers.PlannerHandler
	CascadeHandler    *handlers.CascadeHandler
	DayHandler        *handlers.DayHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	// Catalog
	api.GET("/catalog/:activityID", cfg.CatalogHandler.List)
	api.POST("/catalog/:activityID/bulk", cfg.CatalogHandler.BulkDefine)
	api.POST("/catalog/:activityID/deactivate", cfg.CatalogHandler.Deactivate)
	// Assignments
	api.GET("/assignments", cfg.AssignmentHandler.List)
	// Planner
	api.GET("/assignments/:id/schedule", cfg.PlannerHandler.GetSchedule)
	api.PUT("/assignments/:id/schedule", cfg.PlannerHandler.SaveSchedule)
	api.DELETE("/assignments/:id/schedule/session", cfg.PlannerHandler.CloseSession)
	api.PUT("/assignments/:id/schedule/days/:week/:day", cfg.PlannerHandler.UpdateDay)
	api.POST("/assignments/:id/schedule/days/:week/:day/assign", cfg.PlannerHandler.AssignItems)
	api.POST("/assignments/:id/schedule/days/:week/:day/apply-similar", cfg.PlannerHandler.ApplyToSimilarDays)
	api.POST("/assignments/:id/schedule/weeks", cfg.PlannerHandler.AddWeek)
	api.DELETE("/assignments/:id/schedule/weeks/:week", cfg.PlannerHandler.RemoveWeek)
	api.POST("/assignments/:id/schedule/replicate", cfg.PlannerHandler.ReplicateWeeks)
	api.POST("/assignments/:id/schedule/undo", cfg.PlannerHandler.Undo)
	// Day details
	api.GET("/clients/:clientID/days/:date", cfg.DayHandler.GetDayDetail)
	// Cascade
	api.POST("/cascade", cfg.CascadeHandler.Run)

	return router
}
