package handlers

import (
	"fmt"
	"time"

	"careers-api/internal/models"
	"careers-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		case "national_id":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must contain exactly 14 digits", fieldName)
		case "egypt_mobile":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must start with 01 and contain 11 digits", fieldName)
		}
	}
	return errorsMap
}

// MapApplicationToSummary converts a models.Application to the compact list row.
func MapApplicationToSummary(app *models.Application) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:          app.ID,
		FullName:    app.FullName,
		NationalID:  app.NationalID,
		SelectedJob: app.SelectedJob,
		Status:      app.Status,
		AutoScore:   app.AutoScore,
		ManualScore: app.ManualScore,
		TotalScore:  app.TotalScore,
		CreatedAt:   app.CreatedAt.Format(time.RFC3339),
	}
}

// MapAdminToResponse converts a models.Admin to a dto.AdminResponse.
func MapAdminToResponse(admin *models.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
	}
}
