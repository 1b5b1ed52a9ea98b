package dto

import (
	"careers-api/internal/models"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations wires the domain-specific tags used by the
// request DTOs onto a validator instance. Call once at startup.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return models.NationalIDPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("egypt_mobile", func(fl validator.FieldLevel) bool {
		return models.EgyptMobilePattern.MatchString(fl.Field().String())
	})
}
