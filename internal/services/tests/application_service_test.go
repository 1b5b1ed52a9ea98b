package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_storage "careers-api/internal/mocks"
	"careers-api/internal/models"
	"careers-api/internal/services"
	"careers-api/internal/storage"
	"careers-api/internal/transport/dto"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAppID = uuid.New()

func setupApplicationServiceTest(t *testing.T) (context.Context, services.ApplicationService, *mock_storage.MockApplicationRepository, *mock_storage.MockFileStore, *mock_storage.MockStatusNotifier, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_storage.NewMockApplicationRepository(ctrl)
	mockFiles := mock_storage.NewMockFileStore(ctrl)
	mockNotifier := mock_storage.NewMockStatusNotifier(ctrl)
	service := services.NewApplicationService(mockRepo, mockFiles, mockNotifier)
	return context.Background(), service, mockRepo, mockFiles, mockNotifier, ctrl
}

func validAssistantRequest() *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{
		FullName:       "Sara Mahmoud Ali",
		Email:          "sara@example.com",
		Phone:          "01012345678",
		NationalID:     "29901011234567",
		Address:        "12 El Nasr Street, Cairo",
		SelectedJob:    models.JobAssistant,
		EducationLevel: models.EducationBachelor,
		Transportation: models.TransportationPublic,
		Experiences: []models.Experience{
			{
				CompanyName:      "El Ezaby",
				ManagerPhone:     "01098765432",
				StartDate:        time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:          time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
				ReasonForLeaving: "relocation",
				AverageSales:     50000,
			},
			{
				CompanyName:      "Seif Pharmacies",
				ManagerPhone:     "01155554444",
				StartDate:        time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC),
				EndDate:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				ReasonForLeaving: "better offer",
				AverageSales:     70000,
			},
		},
		Files: map[models.DocumentKind][]byte{
			models.DocNationalIDFront:      []byte("front"),
			models.DocNationalIDBack:       []byte("back"),
			models.DocCV:                   []byte("cv"),
			models.DocEducationCertificate: []byte("cert"),
		},
	}
}

func TestApplicationService_Create(t *testing.T) {
	t.Run("Success - assistant with bachelor degree", func(t *testing.T) {
		ctx, service, mockRepo, mockFiles, mockNotifier, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()

		mockFiles.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []byte, category string) (string, error) {
				return "https://files.example/" + category, nil
			}).Times(len(req.Files))

		var persisted *models.Application
		mockRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, app *models.Application) (*models.Application, error) {
				persisted = app
				return app, nil
			}).Times(1)
		mockNotifier.EXPECT().ApplicationReceived(ctx, gomock.Any()).Return(nil).Times(1)

		created, err := service.Create(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotNil(t, persisted)
		assert.Equal(t, models.StatusUnderReview, created.Status)
		// 20 (bachelor) + 10 (two experience entries), no pharmacist component.
		assert.Equal(t, 30, created.AutoScore)
		assert.Equal(t, 0, created.ManualScore)
		assert.Equal(t, 30, created.TotalScore)
		assert.Len(t, created.Documents, 4)
		assert.Equal(t, "https://files.example/cv", created.Documents[models.DocCV])
	})

	t.Run("Success - pharmacist documents raise the auto score", func(t *testing.T) {
		ctx, service, mockRepo, mockFiles, mockNotifier, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()
		req.SelectedJob = models.JobPharmacist
		req.Files[models.DocGraduationCertificate] = []byte("grad")
		req.Files[models.DocPharmacistLicense] = []byte("license")
		req.Files[models.DocSyndicateCard] = []byte("card")

		mockFiles.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []byte, category string) (string, error) {
				return "https://files.example/" + category, nil
			}).Times(len(req.Files))
		mockRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, app *models.Application) (*models.Application, error) {
				return app, nil
			}).Times(1)
		mockNotifier.EXPECT().ApplicationReceived(ctx, gomock.Any()).Return(nil).Times(1)

		created, err := service.Create(ctx, req)

		require.NoError(t, err)
		// 20 (bachelor) + 10 (two entries) + 20 (license and syndicate card).
		assert.Equal(t, 50, created.AutoScore)
	})

	t.Run("Missing documents - nothing uploaded", func(t *testing.T) {
		ctx, service, _, _, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()
		delete(req.Files, models.DocCV)

		// No Upload, Create or notifier expectations: the service must bail
		// out before touching any collaborator.
		created, err := service.Create(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrMissingDocuments)
		assert.Contains(t, err.Error(), string(models.DocCV))
		assert.Nil(t, created)
	})

	t.Run("Education none - certificate not required", func(t *testing.T) {
		ctx, service, mockRepo, mockFiles, mockNotifier, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()
		req.EducationLevel = models.EducationNone
		delete(req.Files, models.DocEducationCertificate)

		mockFiles.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).Return("https://files.example/doc", nil).Times(len(req.Files))
		mockRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, app *models.Application) (*models.Application, error) {
				return app, nil
			}).Times(1)
		mockNotifier.EXPECT().ApplicationReceived(ctx, gomock.Any()).Return(nil).Times(1)

		created, err := service.Create(ctx, req)

		require.NoError(t, err)
		// 0 (none) + 10 (two entries).
		assert.Equal(t, 10, created.AutoScore)
	})

	t.Run("Invalid experience - end date before start date", func(t *testing.T) {
		ctx, service, _, _, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()
		req.Experiences[0].EndDate = req.Experiences[0].StartDate.AddDate(-1, 0, 0)

		created, err := service.Create(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Nil(t, created)
	})

	t.Run("Received email failure is fatal", func(t *testing.T) {
		ctx, service, mockRepo, mockFiles, mockNotifier, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()

		mockFiles.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).Return("https://files.example/doc", nil).Times(len(req.Files))
		mockRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, app *models.Application) (*models.Application, error) {
				return app, nil
			}).Times(1)
		mockNotifier.EXPECT().ApplicationReceived(ctx, gomock.Any()).Return(errors.New("sendgrid unavailable")).Times(1)

		created, err := service.Create(ctx, req)

		require.Error(t, err)
		assert.Nil(t, created)
	})

	t.Run("Upload failure aborts creation", func(t *testing.T) {
		ctx, service, _, mockFiles, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		req := validAssistantRequest()

		uploadErr := errors.New("cloudinary timeout")
		first := mockFiles.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).Return("", uploadErr).Times(1)
		mockFiles.EXPECT().Upload(ctx, gomock.Any(), gomock.Any()).Return("https://files.example/doc", nil).AnyTimes().After(first)

		created, err := service.Create(ctx, req)

		require.Error(t, err)
		assert.Nil(t, created)
	})
}

func existingApplication() *models.Application {
	app := &models.Application{
		ID:             testAppID,
		FullName:       "Sara Mahmoud Ali",
		Email:          "sara@example.com",
		Phone:          "01012345678",
		NationalID:     "29901011234567",
		SelectedJob:    models.JobAssistant,
		EducationLevel: models.EducationBachelor,
		Transportation: models.TransportationPublic,
		Status:         models.StatusUnderReview,
		Experiences:    make([]models.Experience, 2),
		Documents: map[models.DocumentKind]string{
			models.DocNationalIDFront: "https://files.example/front",
			models.DocNationalIDBack:  "https://files.example/back",
			models.DocCV:              "https://files.example/cv",
		},
		AutoScore:  30,
		TotalScore: 30,
		CreatedAt:  time.Now().Add(-48 * time.Hour),
	}
	return app
}

func statusPtr(s models.Status) *models.Status { return &s }
func intPtr(i int) *int                        { return &i }
func strPtr(s string) *string                  { return &s }

func TestApplicationService_Update(t *testing.T) {
	t.Run("Status change appends one history entry and dispatches once", func(t *testing.T) {
		ctx, service, mockRepo, _, mockNotifier, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		app := existingApplication()
		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(app, nil).Times(1)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *models.Application) (*models.Application, error) {
				return a, nil
			}).Times(1)

		var dispatched models.StatusChange
		mockNotifier.EXPECT().StatusChanged(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *models.Application, change models.StatusChange) error {
				dispatched = change
				return nil
			}).Times(1)

		req := &dto.UpdateApplicationRequest{
			ID:     testAppID,
			Status: statusPtr(models.StatusNeedsRevision),
			Note:   "national ID photo is blurry",
		}
		updated, err := service.Update(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, models.StatusNeedsRevision, updated.Status)
		require.Len(t, updated.StatusHistory, 1)
		assert.Equal(t, models.StatusNeedsRevision, updated.StatusHistory[0].Status)
		assert.Equal(t, "national ID photo is blurry", updated.StatusHistory[0].Note)
		assert.Equal(t, updated.StatusHistory[0], dispatched)
	})

	t.Run("Manual score triggers recomputation of both components", func(t *testing.T) {
		ctx, service, mockRepo, _, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		app := existingApplication()
		app.AutoScore = 0 // Stale on purpose; Update must recompute it.
		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(app, nil).Times(1)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *models.Application) (*models.Application, error) {
				return a, nil
			}).Times(1)

		req := &dto.UpdateApplicationRequest{ID: testAppID, ManualScore: intPtr(25)}
		updated, err := service.Update(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 25, updated.ManualScore)
		assert.Equal(t, 30, updated.AutoScore) // bachelor 20 + two entries 10
		assert.Equal(t, 55, updated.TotalScore)
		assert.Empty(t, updated.StatusHistory) // No status change, no history entry.
	})

	t.Run("Admin notes only - no notification", func(t *testing.T) {
		ctx, service, mockRepo, _, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		app := existingApplication()
		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(app, nil).Times(1)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *models.Application) (*models.Application, error) {
				return a, nil
			}).Times(1)

		req := &dto.UpdateApplicationRequest{ID: testAppID, AdminNotes: strPtr("call the second reference")}
		updated, err := service.Update(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "call the second reference", updated.AdminNotes)
	})

	t.Run("Notification failure does not fail the update", func(t *testing.T) {
		ctx, service, mockRepo, _, mockNotifier, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		app := existingApplication()
		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(app, nil).Times(1)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *models.Application) (*models.Application, error) {
				return a, nil
			}).Times(1)
		mockNotifier.EXPECT().StatusChanged(ctx, gomock.Any(), gomock.Any()).Return(errors.New("sendgrid unavailable")).Times(1)

		req := &dto.UpdateApplicationRequest{ID: testAppID, Status: statusPtr(models.StatusAccepted)}
		updated, err := service.Update(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)
	})

	t.Run("Not found", func(t *testing.T) {
		ctx, service, mockRepo, _, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(nil, storage.ErrNotFound).Times(1)

		req := &dto.UpdateApplicationRequest{ID: testAppID, Status: statusPtr(models.StatusAccepted)}
		updated, err := service.Update(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNotFound)
		assert.Nil(t, updated)
	})
}

func TestApplicationService_List(t *testing.T) {
	ctx, service, mockRepo, _, _, ctrl := setupApplicationServiceTest(t)
	defer ctrl.Finish()

	apps := []*models.Application{existingApplication(), existingApplication()}
	mockRepo.EXPECT().List(ctx, gomock.Any()).Return(apps, 23, nil).Times(1)

	req := &dto.ListApplicationsRequest{Page: 2, Limit: 10}
	result, pagination, err := service.List(ctx, req)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, 23, pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.Limit)
}

func TestApplicationService_Delete(t *testing.T) {
	t.Run("Success - documents cleaned up", func(t *testing.T) {
		ctx, service, mockRepo, mockFiles, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		app := existingApplication()
		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(app, nil).Times(1)
		mockRepo.EXPECT().Delete(ctx, testAppID).Return(nil).Times(1)
		mockFiles.EXPECT().Delete(ctx, gomock.Any()).Return(nil).Times(len(app.Documents))

		err := service.Delete(ctx, &dto.DeleteApplicationRequest{ID: testAppID})

		require.NoError(t, err)
	})

	t.Run("File cleanup failure is tolerated", func(t *testing.T) {
		ctx, service, mockRepo, mockFiles, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		app := existingApplication()
		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(app, nil).Times(1)
		mockRepo.EXPECT().Delete(ctx, testAppID).Return(nil).Times(1)
		mockFiles.EXPECT().Delete(ctx, gomock.Any()).Return(errors.New("cloudinary timeout")).Times(len(app.Documents))

		err := service.Delete(ctx, &dto.DeleteApplicationRequest{ID: testAppID})

		require.NoError(t, err)
	})

	t.Run("Not found", func(t *testing.T) {
		ctx, service, mockRepo, _, _, ctrl := setupApplicationServiceTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().GetByID(ctx, testAppID).Return(nil, storage.ErrNotFound).Times(1)

		err := service.Delete(ctx, &dto.DeleteApplicationRequest{ID: testAppID})

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
