package services

import (
	"context"
	"fmt"
	"log"

	"careers-api/internal/models"
	"careers-api/internal/storage"
	"careers-api/internal/transport/dto"

	"github.com/google/uuid"
)

type applicationService struct {
	repo     storage.ApplicationRepository
	files    storage.FileStore
	notifier StatusNotifier
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(repo storage.ApplicationRepository, files storage.FileStore, notifier StatusNotifier) ApplicationService {
	return &applicationService{
		repo:     repo,
		files:    files,
		notifier: notifier,
	}
}

// Create validates the submission, uploads the documents, computes the
// initial auto score and persists the record with status under_review.
// The received-acknowledgment email is part of the submission contract, so
// a dispatch failure here is propagated to the caller.
func (s *applicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if err := validateExperiences(req.Experiences); err != nil {
		return nil, err
	}

	// Conditional required-ness is checked before any upload happens so a
	// rejected submission costs nothing in the file store.
	present := make(map[models.DocumentKind]string, len(req.Files))
	for kind, data := range req.Files {
		if len(data) > 0 {
			present[kind] = "pending"
		}
	}
	if missing := models.MissingDocuments(req.SelectedJob, req.EducationLevel, present); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingDocuments, missing)
	}

	documents := make(map[models.DocumentKind]string, len(req.Files))
	for kind, data := range req.Files {
		locator, err := s.files.Upload(ctx, data, string(kind))
		if err != nil {
			log.Printf("Create: Error uploading %s document: %v", kind, err)
			return nil, fmt.Errorf("internal error uploading document: %w", err)
		}
		documents[kind] = locator
	}

	app := &models.Application{
		ID:             uuid.New(),
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		NationalID:     req.NationalID,
		Address:        req.Address,
		SelectedJob:    req.SelectedJob,
		EducationLevel: req.EducationLevel,
		Transportation: req.Transportation,
		Documents:      documents,
		Experiences:    req.Experiences,
		Status:         models.StatusUnderReview,
	}
	app.AutoScore = AutoScore(app)
	app.RecalculateTotal()

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		log.Printf("Create: Error persisting application: %v", err)
		return nil, mapRepoError(err, "creating application")
	}

	if err := s.notifier.ApplicationReceived(ctx, created); err != nil {
		log.Printf("Create: Error sending received email for application %s: %v", created.ID, err)
		return nil, fmt.Errorf("internal error sending confirmation email: %w", err)
	}

	return created, nil
}

func (s *applicationService) GetByID(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context, req *dto.ListApplicationsRequest) ([]*models.Application, dto.Pagination, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 10
	}

	apps, total, err := s.repo.List(ctx, req)
	if err != nil {
		log.Printf("List: Error listing applications: %v", err)
		return nil, dto.Pagination{}, mapRepoError(err, "listing applications")
	}

	pagination := dto.Pagination{
		Total: total,
		Pages: (total + req.Limit - 1) / req.Limit,
		Page:  req.Page,
		Limit: req.Limit,
	}
	return apps, pagination, nil
}

// Update applies any subset of admin mutations: a status change (appending
// one history entry and dispatching the matching email), a manual score
// (triggering total recomputation), and admin notes (plain overwrite).
// Status-change email failures are logged, never propagated. Last writer
// wins; there is no conflict detection between concurrent admin edits.
func (s *applicationService) Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}

	var statusChange *models.StatusChange
	if req.Status != nil {
		// Any status may follow any other; no transition graph is enforced.
		change := app.ChangeStatus(*req.Status, req.Note)
		statusChange = &change
	}

	if req.ManualScore != nil {
		app.ManualScore = *req.ManualScore
		app.AutoScore = AutoScore(app)
	}

	if req.AdminNotes != nil {
		app.AdminNotes = *req.AdminNotes
	}

	app.RecalculateTotal()

	updated, err := s.repo.Update(ctx, app)
	if err != nil {
		log.Printf("Update: Error persisting application %s: %v", req.ID, err)
		return nil, mapRepoError(err, fmt.Sprintf("updating application %s", req.ID))
	}

	if statusChange != nil {
		if err := s.notifier.StatusChanged(ctx, updated, *statusChange); err != nil {
			log.Printf("Update: Error dispatching %s notification for application %s: %v", statusChange.Status, updated.ID, err)
		}
	}

	return updated, nil
}

// Delete removes the record entirely, then best-effort cleans its stored
// documents. File-store failures are logged; the record is already gone.
func (s *applicationService) Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error {
	app, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("fetching application %s", req.ID))
	}

	if err := s.repo.Delete(ctx, req.ID); err != nil {
		log.Printf("Delete: Error deleting application %s: %v", req.ID, err)
		return mapRepoError(err, fmt.Sprintf("deleting application %s", req.ID))
	}

	for kind, locator := range app.Documents {
		if locator == "" {
			continue
		}
		if err := s.files.Delete(ctx, locator); err != nil {
			log.Printf("Delete: Error removing %s document for application %s: %v", kind, req.ID, err)
		}
	}

	log.Printf("Application %s deleted", req.ID)
	return nil
}

// validateExperiences enforces the per-entry field constraints the
// presentation boundary cannot express through tags alone.
func validateExperiences(experiences []models.Experience) error {
	for i, exp := range experiences {
		if exp.EndDate.Before(exp.StartDate) {
			return fmt.Errorf("%w: experience %d: end date cannot be before start date", ErrValidation, i+1)
		}
		if !models.EgyptMobilePattern.MatchString(exp.ManagerPhone) {
			return fmt.Errorf("%w: experience %d: manager phone must be an 11-digit mobile number", ErrValidation, i+1)
		}
		if exp.AverageSales <= 0 || exp.AverageSales > 1000000 {
			return fmt.Errorf("%w: experience %d: average sales must be positive and at most 1,000,000", ErrValidation, i+1)
		}
	}
	return nil
}
