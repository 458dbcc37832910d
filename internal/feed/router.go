package feed

import (
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFeedRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	posts := rg.Group("/feed")
	posts.Use(middleware.JWTAuthWithConfig(cfg))
	{
		posts.GET("", controller.ListPosts)
		posts.POST("/posts", controller.CreatePost)
		posts.GET("/posts/:id", controller.GetPost)
		posts.DELETE("/posts/:id", controller.DeletePost)
		posts.POST("/posts/:id/like", controller.Like)
		posts.DELETE("/posts/:id/like", controller.Unlike)
		posts.POST("/posts/:id/comments", controller.AddComment)
		posts.GET("/posts/:id/comments", controller.ListComments)
		posts.DELETE("/comments/:commentId", controller.DeleteComment)
	}
}
