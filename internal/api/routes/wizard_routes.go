package routes

import (
	"careers-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes registers all routes related to the submission wizard.
// The wizard is the public applicant surface, so no auth middleware here.
func RegisterWizardRoutes(
	rg *gin.RouterGroup,
	wizardHandler handlers.WizardHandlerInterface, // Use interface
) {
	wizardGroup := rg.Group("/wizard")
	{
		wizardGroup.POST("", wizardHandler.StartWizard)
		wizardGroup.GET("/:session", wizardHandler.GetWizardState)
		wizardGroup.PUT("/:session/steps/:step", wizardHandler.SaveWizardStep)
		wizardGroup.PUT("/:session/files/:kind", wizardHandler.SaveWizardFile)
		wizardGroup.POST("/:session/back", wizardHandler.WizardBack)
		wizardGroup.POST("/:session/submit", wizardHandler.SubmitWizard)
	}
}
