package routes

import (
	"careers-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers all routes related to admin authentication.
func RegisterAuthRoutes(
	rg *gin.RouterGroup,
	authHandler handlers.AuthHandlerInterface, // Use interface
	authMiddleware gin.HandlerFunc,
) {
	authGroup := rg.Group("/admin/auth")
	{
		authGroup.POST("/login", authHandler.Login)

		// Creating further admin accounts requires an existing session.
		authGroup.POST("/register", authMiddleware, authHandler.Register)
		authGroup.GET("/verify", authMiddleware, authHandler.Verify)
	}
}
