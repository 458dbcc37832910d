package users

import (
	"fittrack/internal/shared/config"
	"fittrack/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles user-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new users router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all user routes
func (userRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.JWTAuthWithConfig(userRouter.config))
	{
		users.GET("/profile", userRouter.controller.GetProfile)
		users.PUT("/profile", userRouter.controller.UpdateProfile)

		users.GET("/onboarding", userRouter.controller.GetOnboarding)
		users.PUT("/onboarding/:step", userRouter.controller.SaveOnboardingStep)
		users.POST("/onboarding/complete", userRouter.controller.CompleteOnboarding)
	}
}
