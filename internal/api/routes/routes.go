// internal/api/routes/routes.go
package routes

import (
	"log"

	"careers-api/internal/api/handlers"
	"careers-api/internal/api/middleware"
	"careers-api/internal/app"
	"careers-api/internal/notify"
	"careers-api/internal/services"
	"careers-api/internal/storage/cloudinary"
	"careers-api/internal/storage/postgres"
	"careers-api/internal/wizard"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// --- Storage layer ---
	applicationRepo := postgres.NewApplicationRepo(app.DBPool)
	adminRepo := postgres.NewAdminRepo(app.DBPool)
	fileStore := cloudinary.NewStore(cloudinary.Config{
		CloudName: app.Config.Cloudinary.CloudName,
		APIKey:    app.Config.Cloudinary.APIKey,
		APISecret: app.Config.Cloudinary.APISecret,
		Folder:    app.Config.Cloudinary.Folder,
	})

	// --- Notifications ---
	mailer := notify.NewSendGridMailer(notify.SendGridConfig{
		APIKey:    app.Config.SendGrid.APIKey,
		FromEmail: app.Config.SendGrid.FromEmail,
		FromName:  app.Config.SendGrid.FromName,
	})
	dispatcher := notify.NewDispatcher(mailer)

	// --- Services ---
	applicationService := services.NewApplicationService(applicationRepo, fileStore, dispatcher)
	authService := services.NewAuthService(adminRepo, app.Config.JWT.Secret, app.Config.JWT.Expiration)

	// --- Wizard ---
	draftStore := wizard.NewRedisDraftStore(app.RedisClient, app.Config.Wizard.DraftTTL)
	machine := wizard.NewMachine(draftStore, applicationService.Create)

	// --- Create handlers ---
	applicationHandler := handlers.NewApplicationHandler(applicationService, app.Validator)
	authHandler := handlers.NewAuthHandler(authService, app.Validator)
	wizardHandler := handlers.NewWizardHandler(machine)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)

	// --- Register Resource Routes ---
	RegisterApplicationRoutes(apiV1, applicationHandler, authMiddleware)
	RegisterAuthRoutes(apiV1, authHandler, authMiddleware)
	RegisterWizardRoutes(apiV1, wizardHandler)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	// Register the Swagger UI handler WITHOUT the explicit URL option.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
