package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vilafit/coachplan-backend/internal/cascade"
	redisclient "github.com/vilafit/coachplan-backend/internal/clients/redis"
	"github.com/vilafit/coachplan-backend/internal/db"
	"github.com/vilafit/coachplan-backend/internal/handlers"
	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/middleware"
	"github.com/vilafit/coachplan-backend/internal/reconcile"
	"github.com/vilafit/coachplan-backend/internal/repos"
	"github.com/vilafit/coachplan-backend/internal/server"
	"github.com/vilafit/coachplan-backend/internal/services"
	"github.com/vilafit/coachplan-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	coachRepo := repos.NewCoachRepo(thePG, log)
	clientRepo := repos.NewClientRepo(thePG, log)
	planRepo := repos.NewPlanRepo(thePG, log)
	catalogItemRepo := repos.NewCatalogItemRepo(thePG, log)
	assignmentRepo := repos.NewAssignmentRepo(thePG, log)
	dayRecordRepo := repos.NewDayRecordRepo(thePG, log)

	// Redis
	log.Info("Setting up day detail cache now...")
	dayCache, err := redisclient.NewDayCache(log)
	if err != nil {
		log.Warn("Could not init day detail cache, cascades will skip invalidation", "error", err)
		dayCache = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, coachRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	reconciler := reconcile.NewReconciler(log, catalogItemRepo)
	catalogService := services.NewCatalogService(thePG, log, catalogItemRepo, reconciler)
	plannerService := services.NewPlannerService(thePG, log, assignmentRepo, planRepo)

	var invalidator cascade.DetailInvalidator
	var detailCache services.DayDetailCache
	if dayCache != nil {
		invalidator = dayCache
		detailCache = dayCache
	}
	dayService := services.NewDayService(thePG, log, clientRepo, dayRecordRepo, detailCache)
	cascadeEngine := cascade.NewEngine(log, dayRecordRepo, invalidator)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	plannerHandler := handlers.NewPlannerHandler(plannerService, catalogService)
	cascadeHandler := handlers.NewCascadeHandler(cascadeEngine, clientRepo)
	dayHandler := handlers.NewDayHandler(dayService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		AssignmentHandler: assignmentHandler,
		CatalogHandler:    catalogHandler,
		PlannerHandler:    plannerHandler,
		CascadeHandler:    cascadeHandler,
		DayHandler:        dayHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
