package habits

import (
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupHabitRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	habits := rg.Group("/habits")
	habits.Use(middleware.JWTAuthWithConfig(cfg))
	{
		habits.POST("", controller.Create)
		habits.GET("", controller.List)
		habits.GET("/:id", controller.Get)
		habits.PUT("/:id", controller.Update)
		habits.DELETE("/:id", controller.Delete)
		habits.POST("/:id/checkin", controller.CheckIn)
	}
}
