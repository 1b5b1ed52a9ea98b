package dto

import (
	"careers-api/internal/models"

	"github.com/google/uuid"
)

// CreateApplicationRequest carries everything needed to create one
// application: applicant fields, experience entries, and the raw bytes of
// each uploaded document keyed by kind. The service uploads the files and
// stores the resulting locators.
type CreateApplicationRequest struct {
	FullName       string                         `json:"full_name" validate:"required,min=3,max=100"`
	Email          string                         `json:"email" validate:"required,email"`
	Phone          string                         `json:"phone" validate:"required,egypt_mobile"`
	NationalID     string                         `json:"national_id" validate:"required,national_id"`
	Address        string                         `json:"address" validate:"required,min=5"`
	SelectedJob    models.Job                     `json:"selected_job" validate:"required,oneof=pharmacist assistant accountant financial"`
	EducationLevel models.EducationLevel          `json:"education_level" validate:"required,oneof=none diploma bachelor master phd"`
	Transportation models.Transportation          `json:"transportation" validate:"required,oneof=car motorcycle bicycle public none"`
	Experiences    []models.Experience            `json:"experiences" validate:"omitempty,dive"`
	Files          map[models.DocumentKind][]byte `json:"-"`
}

// ListApplicationsRequest defines admin listing filters and pagination.
type ListApplicationsRequest struct {
	Status models.Status `form:"status" validate:"omitempty,oneof=under_review needs_revision accepted rejected"`
	Job    models.Job    `form:"job" validate:"omitempty,oneof=pharmacist assistant accountant financial"`
	Search string        `form:"search" validate:"omitempty,max=100"` // substring over name / national ID
	Page   int           `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit  int           `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
}

type GetApplicationByIDRequest struct {
	ID uuid.UUID `json:"-" validate:"required"` // From path
}

// UpdateApplicationRequest carries the admin-issued mutations. Any subset
// may be present; pointers distinguish "absent" from zero values.
type UpdateApplicationRequest struct {
	ID          uuid.UUID      `json:"-" validate:"required"` // From path
	Status      *models.Status `json:"status" validate:"omitempty,oneof=under_review needs_revision accepted rejected"`
	Note        string         `json:"note" validate:"omitempty,max=2000"`
	ManualScore *int           `json:"manual_score" validate:"omitempty,gte=0,lte=100"`
	AdminNotes  *string        `json:"admin_notes" validate:"omitempty,max=5000"`
}

type DeleteApplicationRequest struct {
	ID uuid.UUID `json:"-" validate:"required"` // From path
}

// ApplicationSummary is the compact row returned by the admin list view.
type ApplicationSummary struct {
	ID          uuid.UUID     `json:"id"`
	FullName    string        `json:"full_name"`
	NationalID  string        `json:"national_id"`
	SelectedJob models.Job    `json:"selected_job"`
	Status      models.Status `json:"status"`
	AutoScore   int           `json:"auto_score"`
	ManualScore int           `json:"manual_score"`
	TotalScore  int           `json:"total_score"`
	CreatedAt   string        `json:"created_at"`
}

// ListApplicationsResponse pairs one page of summaries with its pagination.
type ListApplicationsResponse struct {
	Applications []ApplicationSummary `json:"applications"`
	Pagination   Pagination           `json:"pagination"`
}

// CreateApplicationResponse returns the new record's identifier.
type CreateApplicationResponse struct {
	ApplicationID uuid.UUID `json:"application_id"`
}
