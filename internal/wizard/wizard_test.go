package wizard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"careers-api/internal/models"
	"careers-api/internal/transport/dto"
	"careers-api/internal/wizard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-process DraftStore for tests.
type memoryStore struct {
	fields map[string]map[string]string
	files  map[string]map[string]string
	locks  map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		fields: make(map[string]map[string]string),
		files:  make(map[string]map[string]string),
		locks:  make(map[string]bool),
	}
}

var _ wizard.DraftStore = (*memoryStore)(nil)

func (s *memoryStore) GetField(_ context.Context, session, key string) (string, error) {
	return s.fields[session][key], nil
}

func (s *memoryStore) SetField(_ context.Context, session, key, value string) error {
	if s.fields[session] == nil {
		s.fields[session] = make(map[string]string)
	}
	s.fields[session][key] = value
	return nil
}

func (s *memoryStore) DeleteField(_ context.Context, session, key string) error {
	delete(s.fields[session], key)
	return nil
}

func (s *memoryStore) GetFile(_ context.Context, session, kind string) (string, error) {
	return s.files[session][kind], nil
}

func (s *memoryStore) SetFile(_ context.Context, session, kind, encoded string) error {
	if s.files[session] == nil {
		s.files[session] = make(map[string]string)
	}
	s.files[session][kind] = encoded
	return nil
}

func (s *memoryStore) Files(_ context.Context, session string) (map[string]string, error) {
	out := make(map[string]string, len(s.files[session]))
	for k, v := range s.files[session] {
		out[k] = v
	}
	return out, nil
}

func (s *memoryStore) Clear(_ context.Context, session string) error {
	delete(s.fields, session)
	delete(s.files, session)
	delete(s.locks, session)
	return nil
}

func (s *memoryStore) AcquireSubmitLock(_ context.Context, session string) (bool, error) {
	if s.locks[session] {
		return false, nil
	}
	s.locks[session] = true
	return true, nil
}

func (s *memoryStore) ReleaseSubmitLock(_ context.Context, session string) error {
	delete(s.locks, session)
	return nil
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func validPersonalInfo() wizard.PersonalInfoPayload {
	return wizard.PersonalInfoPayload{
		FullName:       "Sara Mahmoud Ali",
		Email:          "sara@example.com",
		Phone:          "01012345678",
		NationalID:     "29901011234567",
		Address:        "12 El Nasr Street, Cairo",
		EducationLevel: models.EducationBachelor,
		Transportation: models.TransportationPublic,
	}
}

func validExperiences() wizard.ExperiencePayload {
	return wizard.ExperiencePayload{
		Experiences: []wizard.ExperienceEntry{
			{
				CompanyName:      "El Ezaby",
				ManagerPhone:     "01098765432",
				StartDate:        "2021-01-01",
				EndDate:          "2022-06-01",
				ReasonForLeaving: "relocation",
				AverageSales:     50000,
			},
		},
	}
}

// noopSubmit never expects to be called.
func noopSubmit(t *testing.T) wizard.SubmitFunc {
	return func(context.Context, *dto.CreateApplicationRequest) (*models.Application, error) {
		t.Fatal("submit must not be called")
		return nil, nil
	}
}

func startSession(t *testing.T, machine *wizard.Machine) string {
	t.Helper()
	session, err := machine.Start(context.Background())
	require.NoError(t, err)
	return session
}

func savePersonalDocs(t *testing.T, machine *wizard.Machine, session string, withEducationCert bool) {
	t.Helper()
	kinds := []models.DocumentKind{models.DocNationalIDFront, models.DocNationalIDBack, models.DocCV}
	if withEducationCert {
		kinds = append(kinds, models.DocEducationCertificate)
	}
	for _, kind := range kinds {
		require.NoError(t, machine.SaveFile(context.Background(), session, kind, []byte("data")))
	}
}

func TestMachine_StartAndState(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)

	snapshot, err := machine.State(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepJobSelection, snapshot.CurrentStep)
	assert.Empty(t, snapshot.Data)
	assert.Empty(t, snapshot.Files)
	// Without a job selected, the default order has no pharmacist step.
	assert.NotContains(t, snapshot.Steps, wizard.StepPharmacistRequirements)
}

func TestMachine_UnknownSession(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))

	_, err := machine.State(context.Background(), "missing")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
}

func TestMachine_JobSelectionRouting(t *testing.T) {
	t.Run("Assistant skips the pharmacist step", func(t *testing.T) {
		machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
		session := startSession(t, machine)

		next, fieldErrors, err := machine.SaveStep(context.Background(), session, wizard.StepJobSelection,
			mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobAssistant}))

		require.NoError(t, err)
		assert.Empty(t, fieldErrors)
		assert.Equal(t, wizard.StepPersonalInfo, next)
	})

	t.Run("Pharmacist routes through the requirements step", func(t *testing.T) {
		machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
		session := startSession(t, machine)

		next, _, err := machine.SaveStep(context.Background(), session, wizard.StepJobSelection,
			mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobPharmacist}))

		require.NoError(t, err)
		assert.Equal(t, wizard.StepPharmacistRequirements, next)
	})

	t.Run("Invalid job blocks and stores nothing", func(t *testing.T) {
		store := newMemoryStore()
		machine := wizard.NewMachine(store, noopSubmit(t))
		session := startSession(t, machine)

		next, fieldErrors, err := machine.SaveStep(context.Background(), session, wizard.StepJobSelection,
			mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.Job("astronaut")}))

		assert.ErrorIs(t, err, wizard.ErrStepBlocked)
		assert.Contains(t, fieldErrors, "selected_job")
		assert.Equal(t, wizard.StepJobSelection, next)
		assert.Empty(t, store.fields[session][wizard.KeySelectedJob])
	})
}

func TestMachine_PharmacistRequirements(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)
	ctx := context.Background()

	_, _, err := machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobPharmacist}))
	require.NoError(t, err)

	// All three documents missing: one field error per document.
	next, fieldErrors, err := machine.SaveStep(ctx, session, wizard.StepPharmacistRequirements, json.RawMessage("{}"))
	assert.ErrorIs(t, err, wizard.ErrStepBlocked)
	assert.Equal(t, wizard.StepPharmacistRequirements, next)
	assert.Len(t, fieldErrors, 3)
	assert.Contains(t, fieldErrors, string(models.DocPharmacistLicense))

	for _, kind := range []models.DocumentKind{
		models.DocGraduationCertificate,
		models.DocPharmacistLicense,
		models.DocSyndicateCard,
	} {
		require.NoError(t, machine.SaveFile(ctx, session, kind, []byte("doc")))
	}

	next, fieldErrors, err = machine.SaveStep(ctx, session, wizard.StepPharmacistRequirements, json.RawMessage("{}"))
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, wizard.StepPersonalInfo, next)
}

func TestMachine_PersonalInfoValidation(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)
	ctx := context.Background()

	_, _, err := machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobAssistant}))
	require.NoError(t, err)
	savePersonalDocs(t, machine, session, true)

	t.Run("13-digit national ID is rejected", func(t *testing.T) {
		info := validPersonalInfo()
		info.NationalID = "2990101123456"

		next, fieldErrors, err := machine.SaveStep(ctx, session, wizard.StepPersonalInfo, mustJSON(t, &info))

		assert.ErrorIs(t, err, wizard.ErrStepBlocked)
		assert.Contains(t, fieldErrors, "national_id")
		assert.Equal(t, wizard.StepPersonalInfo, next)
	})

	t.Run("Valid info advances to experience", func(t *testing.T) {
		info := validPersonalInfo()

		next, fieldErrors, err := machine.SaveStep(ctx, session, wizard.StepPersonalInfo, mustJSON(t, &info))

		require.NoError(t, err)
		assert.Empty(t, fieldErrors)
		assert.Equal(t, wizard.StepExperience, next)
	})
}

func TestMachine_PersonalInfoRequiresEducationCertificate(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)
	ctx := context.Background()

	_, _, err := machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobAssistant}))
	require.NoError(t, err)
	savePersonalDocs(t, machine, session, false) // no certificate uploaded

	info := validPersonalInfo() // bachelor, so the certificate is required
	_, fieldErrors, err := machine.SaveStep(ctx, session, wizard.StepPersonalInfo, mustJSON(t, &info))
	assert.ErrorIs(t, err, wizard.ErrStepBlocked)
	assert.Contains(t, fieldErrors, string(models.DocEducationCertificate))

	// With education level none, the certificate requirement disappears.
	info.EducationLevel = models.EducationNone
	next, _, err := machine.SaveStep(ctx, session, wizard.StepPersonalInfo, mustJSON(t, &info))
	require.NoError(t, err)
	assert.Equal(t, wizard.StepExperience, next)
}

func TestMachine_ExperienceValidation(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)
	ctx := context.Background()

	_, _, err := machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobAssistant}))
	require.NoError(t, err)
	savePersonalDocs(t, machine, session, true)
	_, _, err = machine.SaveStep(ctx, session, wizard.StepPersonalInfo, mustJSON(t, validPersonalInfo()))
	require.NoError(t, err)

	t.Run("End date before start date is rejected", func(t *testing.T) {
		payload := validExperiences()
		payload.Experiences[0].StartDate = "2022-06-01"
		payload.Experiences[0].EndDate = "2021-01-01"

		_, fieldErrors, err := machine.SaveStep(ctx, session, wizard.StepExperience, mustJSON(t, &payload))

		assert.ErrorIs(t, err, wizard.ErrStepBlocked)
		assert.Contains(t, fieldErrors, "experiences[0].end_date")
	})

	t.Run("Empty list is rejected", func(t *testing.T) {
		_, fieldErrors, err := machine.SaveStep(ctx, session, wizard.StepExperience,
			mustJSON(t, &wizard.ExperiencePayload{}))

		assert.ErrorIs(t, err, wizard.ErrStepBlocked)
		assert.Contains(t, fieldErrors, "experiences")
	})

	t.Run("Valid entries reach review", func(t *testing.T) {
		next, _, err := machine.SaveStep(ctx, session, wizard.StepExperience, mustJSON(t, validExperiences()))

		require.NoError(t, err)
		assert.Equal(t, wizard.StepReview, next)
	})
}

func TestMachine_Back(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)
	ctx := context.Background()

	// At the first step, Back stays put.
	step, err := machine.Back(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepJobSelection, step)

	_, _, err = machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobAssistant}))
	require.NoError(t, err)

	step, err = machine.Back(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepJobSelection, step)

	// The saved selection survived the move back.
	snapshot, err := machine.State(ctx, session)
	require.NoError(t, err)
	assert.Contains(t, snapshot.Data, wizard.KeySelectedJob)
}

func TestMachine_SaveFileTooLarge(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)

	err := machine.SaveFile(context.Background(), session, models.DocCV, make([]byte, wizard.MaxFileSize+1))
	assert.ErrorIs(t, err, wizard.ErrFileTooLarge)
}

// driveToReview walks a session through the assistant path up to review.
func driveToReview(t *testing.T, machine *wizard.Machine, session string) {
	t.Helper()
	ctx := context.Background()
	_, _, err := machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobAssistant}))
	require.NoError(t, err)
	savePersonalDocs(t, machine, session, true)
	_, _, err = machine.SaveStep(ctx, session, wizard.StepPersonalInfo, mustJSON(t, validPersonalInfo()))
	require.NoError(t, err)
	next, _, err := machine.SaveStep(ctx, session, wizard.StepExperience, mustJSON(t, validExperiences()))
	require.NoError(t, err)
	require.Equal(t, wizard.StepReview, next)
}

func TestMachine_Submit(t *testing.T) {
	t.Run("Success clears the draft and marks the session submitted", func(t *testing.T) {
		store := newMemoryStore()
		var captured *dto.CreateApplicationRequest
		created := &models.Application{ID: uuid.New()}
		machine := wizard.NewMachine(store, func(_ context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
			captured = req
			return created, nil
		})
		session := startSession(t, machine)
		driveToReview(t, machine, session)

		app, err := machine.Submit(context.Background(), session)

		require.NoError(t, err)
		assert.Equal(t, created.ID, app.ID)

		require.NotNil(t, captured)
		assert.Equal(t, "Sara Mahmoud Ali", captured.FullName)
		assert.Equal(t, models.JobAssistant, captured.SelectedJob)
		assert.Len(t, captured.Experiences, 1)
		assert.Equal(t, []byte("data"), captured.Files[models.DocCV])

		snapshot, err := machine.State(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, wizard.StepSubmitted, snapshot.CurrentStep)
		assert.Empty(t, snapshot.Files)

		// Re-submission is refused.
		_, err = machine.Submit(context.Background(), session)
		assert.ErrorIs(t, err, wizard.ErrAlreadySubmitted)
	})

	t.Run("Failure keeps the draft for retry", func(t *testing.T) {
		store := newMemoryStore()
		calls := 0
		machine := wizard.NewMachine(store, func(context.Context, *dto.CreateApplicationRequest) (*models.Application, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("upstream unavailable")
			}
			return &models.Application{}, nil
		})
		session := startSession(t, machine)
		driveToReview(t, machine, session)

		_, err := machine.Submit(context.Background(), session)
		require.Error(t, err)

		snapshot, err := machine.State(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, wizard.StepReview, snapshot.CurrentStep)
		assert.Contains(t, snapshot.Data, wizard.KeyPersonalInfo)
		assert.NotEmpty(t, snapshot.Files)

		// The lock was released, so the retry goes through.
		_, err = machine.Submit(context.Background(), session)
		require.NoError(t, err)
	})

	t.Run("Refused before review", func(t *testing.T) {
		machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
		session := startSession(t, machine)

		_, err := machine.Submit(context.Background(), session)
		assert.ErrorIs(t, err, wizard.ErrNotAtReview)
	})

	t.Run("Concurrent submission is refused while the lock is held", func(t *testing.T) {
		store := newMemoryStore()
		machine := wizard.NewMachine(store, func(context.Context, *dto.CreateApplicationRequest) (*models.Application, error) {
			return &models.Application{}, nil
		})
		session := startSession(t, machine)
		driveToReview(t, machine, session)

		acquired, err := store.AcquireSubmitLock(context.Background(), session)
		require.NoError(t, err)
		require.True(t, acquired)

		_, err = machine.Submit(context.Background(), session)
		assert.ErrorIs(t, err, wizard.ErrSubmitInFlight)
	})
}

func TestMachine_ReviewTimeJobChangeReroutes(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)
	ctx := context.Background()
	driveToReview(t, machine, session)

	// Changing the job from review re-routes from the top of the new order.
	next, _, err := machine.SaveStep(ctx, session, wizard.StepJobSelection,
		mustJSON(t, wizard.JobSelectionPayload{SelectedJob: models.JobPharmacist}))
	require.NoError(t, err)
	assert.Equal(t, wizard.StepPharmacistRequirements, next)

	// Previously saved data is untouched.
	snapshot, err := machine.State(ctx, session)
	require.NoError(t, err)
	assert.Contains(t, snapshot.Data, wizard.KeyPersonalInfo)
	assert.Contains(t, snapshot.Data, wizard.KeyExperiences)
}

func TestMachine_ForwardJumpRefused(t *testing.T) {
	machine := wizard.NewMachine(newMemoryStore(), noopSubmit(t))
	session := startSession(t, machine)

	_, _, err := machine.SaveStep(context.Background(), session, wizard.StepExperience,
		mustJSON(t, validExperiences()))
	assert.ErrorIs(t, err, wizard.ErrStepNotAllowed)
}
