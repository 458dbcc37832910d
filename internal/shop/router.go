package shop

import (
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShopRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	shop := rg.Group("/shop")
	{
		// Catalog is public
		shop.GET("/products", controller.ListProducts)
		shop.GET("/products/:id", controller.GetProduct)

		orders := shop.Group("/orders")
		orders.Use(middleware.JWTAuthWithConfig(cfg))
		{
			orders.POST("", controller.PlaceOrder)
			orders.GET("", controller.ListOrders)
			orders.GET("/:id", controller.GetOrder)
			orders.POST("/:id/cancel", controller.CancelOrder)
		}
	}
}
