package routes

import (
	"net/http"
	"time"

	"fittrack/internal/auth"
	"fittrack/internal/feed"
	"fittrack/internal/habits"
	"fittrack/internal/notifications"
	"fittrack/internal/nutrition"
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/database"
	"fittrack/internal/shop"
	"fittrack/internal/users"
	"fittrack/internal/workouts"
	"fittrack/pkg/cache"
	"fittrack/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fittrack/docs"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	logger *logger.Logger

	cacheService cache.Service

	// Services kept for cross-module wiring
	workoutService  workouts.Service
	habitService    habits.Service
	shopService     shop.Service
	feedService     feed.Service
	usersRepo       users.Repository
	activityService *notifications.ActivityService
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		logger:       log,
		cacheService: cache.NewService(db.GetRedisClient()),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupWorkoutRoutes(api)
		r.setupNutritionRoutes(api)
		r.setupHabitRoutes(api)
		r.setupFeedRoutes(api)
		r.setupShopRoutes(api)
	}

	// The activity pipeline plugs into the services wired above, so it
	// comes last.
	r.setupActivityPipeline()
}

// ActivityService returns the Kafka pipeline, nil when disabled.
func (r *Router) ActivityService() *notifications.ActivityService {
	return r.activityService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "fittrack-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "fittrack-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo)
	userController := users.NewController(userService)
	userRouter := users.NewRouter(userController, r.config)

	// Kept for the activity pipeline's email lookups
	r.usersRepo = userRepo

	userRouter.SetupRoutes(rg)
}

func (r *Router) setupWorkoutRoutes(rg *gin.RouterGroup) {
	workoutRepo := workouts.NewRepository(r.db.GetPostgreSQL())
	workoutService := workouts.NewService(workoutRepo)
	workoutController := workouts.NewController(workoutService)

	r.workoutService = workoutService

	workouts.SetupWorkoutRoutes(rg, workoutController, r.config)
}

func (r *Router) setupNutritionRoutes(rg *gin.RouterGroup) {
	nutritionRepo := nutrition.NewRepository(r.db.GetPostgreSQL())
	nutritionService := nutrition.NewService(nutritionRepo, r.cacheService, r.config.Redis.SummaryCacheTTL)
	nutritionController := nutrition.NewController(nutritionService)

	nutrition.SetupNutritionRoutes(rg, nutritionController, r.config)
}

func (r *Router) setupHabitRoutes(rg *gin.RouterGroup) {
	habitRepo := habits.NewRepository(r.db.GetPostgreSQL())
	habitService := habits.NewService(habitRepo, r.logger)
	habitController := habits.NewController(habitService)

	r.habitService = habitService

	habits.SetupHabitRoutes(rg, habitController, r.config)
}

func (r *Router) setupFeedRoutes(rg *gin.RouterGroup) {
	feedRepo := feed.NewRepository(r.db.GetPostgreSQL())
	feedService := feed.NewService(feedRepo)
	feedController := feed.NewController(feedService)

	r.feedService = feedService

	feed.SetupFeedRoutes(rg, feedController, r.config)
}

func (r *Router) setupShopRoutes(rg *gin.RouterGroup) {
	shopRepo := shop.NewRepository(r.db.GetPostgreSQL())
	reserver := shop.NewStockReserver(r.db.GetRedisClient())
	shopService := shop.NewService(shopRepo, reserver, r.cacheService, r.logger, r.config.Redis.CatalogCacheTTL)
	shopController := shop.NewController(shopService)

	r.shopService = shopService

	shop.SetupShopRoutes(rg, shopController, r.config)
}

// setupActivityPipeline wires Kafka publishing into the domain services and
// prepares the consumer. Everything still works when Kafka is unavailable,
// the events are just not emitted.
func (r *Router) setupActivityPipeline() {
	if !r.config.Kafka.Enabled {
		r.logger.Info("Activity pipeline disabled by configuration")
		return
	}

	feedWriter := notifications.NewFeedWriter(r.feedService)
	directory := notifications.NewUserDirectory(r.usersRepo)

	activityService, err := notifications.NewActivityService(r.config, feedWriter, directory, r.logger)
	if err != nil {
		r.logger.Warn("Activity pipeline unavailable, continuing without events", "error", err.Error())
		return
	}

	r.activityService = activityService

	publisher := activityService.Publisher()
	r.workoutService.SetActivityPublisher(publisher)
	r.habitService.SetActivityPublisher(publisher)
	r.shopService.SetActivityPublisher(publisher)
}
