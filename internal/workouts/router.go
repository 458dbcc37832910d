package workouts

import (
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWorkoutRoutes registers all workout routes
func SetupWorkoutRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	workouts := rg.Group("/workouts")
	workouts.Use(middleware.JWTAuthWithConfig(cfg))
	{
		workouts.POST("", controller.Create)
		workouts.GET("", controller.List)
		workouts.GET("/stats/weekly", controller.WeeklyStats)
		workouts.GET("/:id", controller.Get)
		workouts.PUT("/:id", controller.Update)
		workouts.DELETE("/:id", controller.Delete)
	}
}
