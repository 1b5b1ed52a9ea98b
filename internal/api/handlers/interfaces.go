// internal/api/handlers/interfaces.go (or similar)
package handlers

import "github.com/gin-gonic/gin"

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	CreateApplication(c *gin.Context)
	ListApplications(c *gin.Context)
	GetApplicationByID(c *gin.Context)
	UpdateApplication(c *gin.Context)
	DeleteApplication(c *gin.Context)
}

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Verify(c *gin.Context)
}

// WizardHandlerInterface defines the methods needed by the wizard routes.
type WizardHandlerInterface interface {
	StartWizard(c *gin.Context)
	GetWizardState(c *gin.Context)
	SaveWizardStep(c *gin.Context)
	SaveWizardFile(c *gin.Context)
	WizardBack(c *gin.Context)
	SubmitWizard(c *gin.Context)
}
