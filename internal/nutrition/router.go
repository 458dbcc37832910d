package nutrition

import (
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupNutritionRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	meals := rg.Group("/nutrition")
	meals.Use(middleware.JWTAuthWithConfig(cfg))
	{
		meals.POST("/meals", controller.LogMeal)
		meals.GET("/meals", controller.ListMeals)
		meals.DELETE("/meals/:id", controller.DeleteMeal)
		meals.GET("/summary", controller.DailySummary)
	}
}
