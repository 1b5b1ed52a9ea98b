package wizard

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"careers-api/internal/models"
	"careers-api/internal/transport/dto"

	"github.com/google/uuid"
)

// Sentinel errors of the wizard state machine.
var (
	ErrSessionNotFound  = errors.New("wizard session not found")
	ErrStepBlocked      = errors.New("step input failed validation")
	ErrStepNotAllowed   = errors.New("step is not reachable from the current state")
	ErrNotAtReview      = errors.New("submission is only allowed from the review step")
	ErrSubmitInFlight   = errors.New("a submission for this session is already in flight")
	ErrAlreadySubmitted = errors.New("this session has already been submitted")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
)

// MaxFileSize bounds each persisted attachment (same 5MB cap the upload
// widget enforces).
const MaxFileSize = 5 * 1024 * 1024

// SubmitFunc performs the single atomic submission of the assembled payload.
type SubmitFunc func(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)

// Machine walks one applicant through the ordered, conditionally-branching
// step sequence, persisting each step's validated input in the draft store
// and performing one final atomic submission.
type Machine struct {
	store  DraftStore
	submit SubmitFunc
}

// NewMachine creates a wizard machine over the given draft store.
func NewMachine(store DraftStore, submit SubmitFunc) *Machine {
	return &Machine{store: store, submit: submit}
}

// Snapshot describes the externally visible wizard state.
type Snapshot struct {
	Session     string                     `json:"session"`
	CurrentStep Step                       `json:"current_step"`
	SelectedJob models.Job                 `json:"selected_job,omitempty"`
	Steps       []Step                     `json:"steps"`
	Data        map[string]json.RawMessage `json:"data"`
	Files       []models.DocumentKind      `json:"files"`
}

// Start opens a new wizard session positioned at job selection.
func (m *Machine) Start(ctx context.Context) (string, error) {
	session := uuid.New().String()
	if err := m.store.SetField(ctx, session, KeyCurrentStep, string(StepJobSelection)); err != nil {
		return "", err
	}
	return session, nil
}

// State returns the session's current step, the step order implied by the
// selected job, and everything persisted so far.
func (m *Machine) State(ctx context.Context, session string) (*Snapshot, error) {
	current, err := m.currentStep(ctx, session)
	if err != nil {
		return nil, err
	}

	job, err := m.selectedJob(ctx, session)
	if err != nil {
		return nil, err
	}

	data := make(map[string]json.RawMessage)
	for _, key := range []string{KeySelectedJob, KeyPharmacistDocs, KeyPersonalInfo, KeyExperiences} {
		value, err := m.store.GetField(ctx, session, key)
		if err != nil {
			return nil, err
		}
		if value != "" {
			data[key] = json.RawMessage(value)
		}
	}

	files, err := m.store.Files(ctx, session)
	if err != nil {
		return nil, err
	}
	kinds := make([]models.DocumentKind, 0, len(files))
	for kind := range files {
		kinds = append(kinds, models.DocumentKind(kind))
	}

	return &Snapshot{
		Session:     session,
		CurrentStep: current,
		SelectedJob: job,
		Steps:       StepOrder(job),
		Data:        data,
		Files:       kinds,
	}, nil
}

// SaveStep validates the payload for the given step and, on success,
// persists it under the step's fixed key. Saving the current step advances
// the machine; saving an earlier step (a review-time edit) keeps the
// position, except that changing the selected job re-routes from the top
// since the remaining path depends on it. A validation failure persists
// nothing and reports per-field errors.
func (m *Machine) SaveStep(ctx context.Context, session string, step Step, payload json.RawMessage) (Step, FieldErrors, error) {
	current, err := m.currentStep(ctx, session)
	if err != nil {
		return "", nil, err
	}
	if current == StepSubmitted {
		return current, nil, ErrAlreadySubmitted
	}

	job, err := m.selectedJob(ctx, session)
	if err != nil {
		return current, nil, err
	}
	order := StepOrder(job)

	targetIdx := stepIndex(order, step)
	currentIdx := stepIndex(order, current)
	if targetIdx == -1 || targetIdx > currentIdx || step == StepReview {
		return current, nil, ErrStepNotAllowed
	}

	switch step {
	case StepJobSelection:
		return m.saveJobSelection(ctx, session, payload)
	case StepPharmacistRequirements:
		return m.savePharmacistRequirements(ctx, session, current, job)
	case StepPersonalInfo:
		return m.savePersonalInfo(ctx, session, current, job, payload)
	case StepExperience:
		return m.saveExperience(ctx, session, current, job, payload)
	default:
		return current, nil, ErrStepNotAllowed
	}
}

func (m *Machine) saveJobSelection(ctx context.Context, session string, payload json.RawMessage) (Step, FieldErrors, error) {
	var input JobSelectionPayload
	if err := json.Unmarshal(payload, &input); err != nil {
		return StepJobSelection, FieldErrors{"selected_job": "invalid payload"}, ErrStepBlocked
	}
	if errs := input.validate(); len(errs) > 0 {
		return StepJobSelection, errs, ErrStepBlocked
	}

	encoded, err := json.Marshal(input)
	if err != nil {
		return StepJobSelection, nil, fmt.Errorf("failed to encode job selection: %w", err)
	}
	if err := m.store.SetField(ctx, session, KeySelectedJob, string(encoded)); err != nil {
		return StepJobSelection, nil, err
	}

	// The remaining path depends on the job, so always re-route from here.
	next := StepOrder(input.SelectedJob)[1]
	if err := m.setCurrentStep(ctx, session, next); err != nil {
		return StepJobSelection, nil, err
	}
	return next, nil, nil
}

func (m *Machine) savePharmacistRequirements(ctx context.Context, session string, current Step, job models.Job) (Step, FieldErrors, error) {
	errs := FieldErrors{}
	for _, kind := range []models.DocumentKind{
		models.DocGraduationCertificate,
		models.DocPharmacistLicense,
		models.DocSyndicateCard,
	} {
		encoded, err := m.store.GetFile(ctx, session, string(kind))
		if err != nil {
			return current, nil, err
		}
		if encoded == "" {
			errs[string(kind)] = "this document is required"
		}
	}
	if len(errs) > 0 {
		return current, errs, ErrStepBlocked
	}

	if err := m.store.SetField(ctx, session, KeyPharmacistDocs, `{"complete":true}`); err != nil {
		return current, nil, err
	}
	return m.advanceFrom(ctx, session, current, StepPharmacistRequirements, job)
}

func (m *Machine) savePersonalInfo(ctx context.Context, session string, current Step, job models.Job, payload json.RawMessage) (Step, FieldErrors, error) {
	var input PersonalInfoPayload
	if err := json.Unmarshal(payload, &input); err != nil {
		return current, FieldErrors{"payload": "invalid payload"}, ErrStepBlocked
	}

	errs := input.validate()

	// Attachment requirements depend on the education level.
	required := []models.DocumentKind{models.DocNationalIDFront, models.DocNationalIDBack, models.DocCV}
	if input.EducationLevel.IsValid() && input.EducationLevel != models.EducationNone {
		required = append(required, models.DocEducationCertificate)
	}
	for _, kind := range required {
		encoded, err := m.store.GetFile(ctx, session, string(kind))
		if err != nil {
			return current, nil, err
		}
		if encoded == "" {
			errs[string(kind)] = "this document is required"
		}
	}

	if len(errs) > 0 {
		return current, errs, ErrStepBlocked
	}

	encoded, err := json.Marshal(input)
	if err != nil {
		return current, nil, fmt.Errorf("failed to encode personal info: %w", err)
	}
	if err := m.store.SetField(ctx, session, KeyPersonalInfo, string(encoded)); err != nil {
		return current, nil, err
	}
	return m.advanceFrom(ctx, session, current, StepPersonalInfo, job)
}

func (m *Machine) saveExperience(ctx context.Context, session string, current Step, job models.Job, payload json.RawMessage) (Step, FieldErrors, error) {
	var input ExperiencePayload
	if err := json.Unmarshal(payload, &input); err != nil {
		return current, FieldErrors{"experiences": "invalid payload"}, ErrStepBlocked
	}
	if errs := input.validate(); len(errs) > 0 {
		return current, errs, ErrStepBlocked
	}

	encoded, err := json.Marshal(input)
	if err != nil {
		return current, nil, fmt.Errorf("failed to encode experiences: %w", err)
	}
	if err := m.store.SetField(ctx, session, KeyExperiences, string(encoded)); err != nil {
		return current, nil, err
	}
	return m.advanceFrom(ctx, session, current, StepExperience, job)
}

// advanceFrom moves the machine to the step after `saved` when `saved` is
// the current step; review-time edits of earlier steps keep the position.
func (m *Machine) advanceFrom(ctx context.Context, session string, current, saved Step, job models.Job) (Step, FieldErrors, error) {
	if current != saved {
		return current, nil, nil
	}
	order := StepOrder(job)
	next := order[stepIndex(order, saved)+1]
	if err := m.setCurrentStep(ctx, session, next); err != nil {
		return current, nil, err
	}
	return next, nil, nil
}

// Back moves one step backward. Always permitted and never discards data.
func (m *Machine) Back(ctx context.Context, session string) (Step, error) {
	current, err := m.currentStep(ctx, session)
	if err != nil {
		return "", err
	}
	if current == StepSubmitted {
		return current, ErrAlreadySubmitted
	}

	job, err := m.selectedJob(ctx, session)
	if err != nil {
		return current, err
	}
	order := StepOrder(job)
	idx := stepIndex(order, current)
	if idx <= 0 {
		return current, nil
	}

	previous := order[idx-1]
	if err := m.setCurrentStep(ctx, session, previous); err != nil {
		return current, err
	}
	return previous, nil
}

// SaveFile persists one attachment as an inlined byte representation,
// separate from the structured step fields.
func (m *Machine) SaveFile(ctx context.Context, session string, kind models.DocumentKind, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", ErrStepBlocked)
	}
	if len(data) > MaxFileSize {
		return ErrFileTooLarge
	}
	return m.store.SetFile(ctx, session, string(kind), base64.StdEncoding.EncodeToString(data))
}

// Submit assembles every persisted step plus all stored attachments into a
// single payload and performs the one request that creates the
// application. Success clears all per-step state; failure retains it so
// the action can be retried from the review step without re-entry.
func (m *Machine) Submit(ctx context.Context, session string) (*models.Application, error) {
	current, err := m.currentStep(ctx, session)
	if err != nil {
		return nil, err
	}
	if current == StepSubmitted {
		return nil, ErrAlreadySubmitted
	}
	if current != StepReview {
		return nil, ErrNotAtReview
	}

	acquired, err := m.store.AcquireSubmitLock(ctx, session)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmitInFlight
	}

	req, err := m.assemble(ctx, session)
	if err != nil {
		if releaseErr := m.store.ReleaseSubmitLock(ctx, session); releaseErr != nil {
			log.Printf("Wizard: failed to release submit lock for session %s: %v", session, releaseErr)
		}
		return nil, err
	}

	app, err := m.submit(ctx, req)
	if err != nil {
		// Retain all persisted state so the user can retry from Review.
		if releaseErr := m.store.ReleaseSubmitLock(ctx, session); releaseErr != nil {
			log.Printf("Wizard: failed to release submit lock for session %s: %v", session, releaseErr)
		}
		return nil, err
	}

	if err := m.store.Clear(ctx, session); err != nil {
		log.Printf("Wizard: failed to clear draft for session %s: %v", session, err)
	}
	if err := m.setCurrentStep(ctx, session, StepSubmitted); err != nil {
		log.Printf("Wizard: failed to mark session %s submitted: %v", session, err)
	}

	return app, nil
}

func (m *Machine) assemble(ctx context.Context, session string) (*dto.CreateApplicationRequest, error) {
	jobRaw, err := m.store.GetField(ctx, session, KeySelectedJob)
	if err != nil {
		return nil, err
	}
	personalRaw, err := m.store.GetField(ctx, session, KeyPersonalInfo)
	if err != nil {
		return nil, err
	}
	experiencesRaw, err := m.store.GetField(ctx, session, KeyExperiences)
	if err != nil {
		return nil, err
	}
	if jobRaw == "" || personalRaw == "" || experiencesRaw == "" {
		return nil, fmt.Errorf("%w: draft is incomplete", ErrStepBlocked)
	}

	var jobInput JobSelectionPayload
	if err := json.Unmarshal([]byte(jobRaw), &jobInput); err != nil {
		return nil, fmt.Errorf("failed to decode stored job selection: %w", err)
	}
	var personal PersonalInfoPayload
	if err := json.Unmarshal([]byte(personalRaw), &personal); err != nil {
		return nil, fmt.Errorf("failed to decode stored personal info: %w", err)
	}
	var experiences ExperiencePayload
	if err := json.Unmarshal([]byte(experiencesRaw), &experiences); err != nil {
		return nil, fmt.Errorf("failed to decode stored experiences: %w", err)
	}

	stored, err := m.store.Files(ctx, session)
	if err != nil {
		return nil, err
	}
	files := make(map[models.DocumentKind][]byte, len(stored))
	for kind, encoded := range stored {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored file %s: %w", kind, err)
		}
		files[models.DocumentKind(kind)] = data
	}

	return &dto.CreateApplicationRequest{
		FullName:       personal.FullName,
		Email:          personal.Email,
		Phone:          personal.Phone,
		NationalID:     personal.NationalID,
		Address:        personal.Address,
		SelectedJob:    jobInput.SelectedJob,
		EducationLevel: personal.EducationLevel,
		Transportation: personal.Transportation,
		Experiences:    experiences.toModel(),
		Files:          files,
	}, nil
}

func (m *Machine) currentStep(ctx context.Context, session string) (Step, error) {
	value, err := m.store.GetField(ctx, session, KeyCurrentStep)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", ErrSessionNotFound
	}
	return Step(value), nil
}

func (m *Machine) setCurrentStep(ctx context.Context, session string, step Step) error {
	return m.store.SetField(ctx, session, KeyCurrentStep, string(step))
}

func (m *Machine) selectedJob(ctx context.Context, session string) (models.Job, error) {
	raw, err := m.store.GetField(ctx, session, KeySelectedJob)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}
	var input JobSelectionPayload
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return "", fmt.Errorf("failed to decode stored job selection: %w", err)
	}
	return input.SelectedJob, nil
}
