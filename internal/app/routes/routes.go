package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/akgec/studentreg/internal/app/controllers"
	"github.com/akgec/studentreg/internal/middleware"
	"github.com/akgec/studentreg/internal/pkg/apperrors"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	formController *controllers.FormController,
	healthController *controllers.HealthController,
	rateLimiter *middleware.RateLimiter,
) {
	router.NoRoute(func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("Route not found"))
	})

	router.GET("/ping", healthController.Ping)
	router.GET("/health", healthController.Health)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Form routes ---
	form := v1.Group("/form")
	if rateLimiter != nil {
		form.Use(rateLimiter.Handler())
	}
	{
		form.GET("/schema", formController.GetSchema)
		form.GET("", formController.GetForm)
		form.PATCH("/fields", formController.UpdateFields)
		form.POST("/validate", formController.Validate)
		form.POST("/captcha", formController.VerifyCaptcha)
		form.POST("/submit", formController.Submit)
		form.POST("/reset", formController.Reset)
	}
}
