package routes

import (
	"careers-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to applications.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	appHandler handlers.ApplicationHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
) {
	// Public submission endpoint
	rg.POST("/applications", appHandler.CreateApplication)

	// Admin review endpoints
	adminGroup := rg.Group("/admin/applications")
	adminGroup.Use(authMiddleware)
	{
		adminGroup.GET("", appHandler.ListApplications)
		adminGroup.GET("/:id", appHandler.GetApplicationByID)
		adminGroup.PATCH("/:id", appHandler.UpdateApplication)
		adminGroup.DELETE("/:id", appHandler.DeleteApplication)
	}
}
