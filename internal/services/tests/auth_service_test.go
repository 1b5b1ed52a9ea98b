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

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtSecret   = "test-secret-key"
	jwtDuration = 15 * time.Minute
)

var testAdminID = uuid.New()

func setupAuthServiceTest(t *testing.T) (context.Context, services.AuthService, *mock_storage.MockAdminRepository, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_storage.NewMockAdminRepository(ctrl)
	service := services.NewAuthService(mockRepo, jwtSecret, jwtDuration)
	return context.Background(), service, mockRepo, ctrl
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		req := &dto.RegisterAdminRequest{Name: "Reviewer", Email: "reviewer@example.com", Password: "password123"}
		mockRepo.EXPECT().Create(ctx, req).Return(&models.Admin{
			ID:    testAdminID,
			Name:  req.Name,
			Email: req.Email,
		}, nil).Times(1)

		admin, err := service.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, testAdminID, admin.ID)
		assert.Equal(t, req.Email, admin.Email)
	})

	t.Run("Conflict - duplicate email", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		req := &dto.RegisterAdminRequest{Name: "Reviewer", Email: "reviewer@example.com", Password: "password123"}
		mockRepo.EXPECT().Create(ctx, req).Return(nil, storage.ErrDuplicateEmail).Times(1)

		admin, err := service.Register(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrConflict)
		assert.Nil(t, admin)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedAdmin := &models.Admin{
		ID:           testAdminID,
		Name:         "Reviewer",
		Email:        "reviewer@example.com",
		PasswordHash: string(hash),
	}

	t.Run("Success - token carries the admin ID", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(storedAdmin, nil).Times(1)

		admin, token, err := service.Login(ctx, &dto.LoginRequest{Email: storedAdmin.Email, Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, testAdminID, admin.ID)
		require.NotEmpty(t, token)

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, testAdminID.String(), claims.Subject)
	})

	t.Run("Wrong password", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(storedAdmin, nil).Times(1)

		admin, token, err := service.Login(ctx, &dto.LoginRequest{Email: storedAdmin.Email, Password: "wrong"})

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, admin)
		assert.Empty(t, token)
	})

	t.Run("Unknown email yields the same error as a bad password", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, storage.ErrNotFound).Times(1)

		admin, token, err := service.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		assert.Nil(t, admin)
		assert.Empty(t, token)
	})

	t.Run("Repository failure surfaces as internal error", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		mockRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, errors.New("connection refused")).Times(1)

		_, _, err := service.Login(ctx, &dto.LoginRequest{Email: storedAdmin.Email, Password: "password123"})

		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestAuthService_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		req := &dto.GetAdminByIDRequest{ID: testAdminID}
		mockRepo.EXPECT().GetByID(ctx, req).Return(&models.Admin{ID: testAdminID}, nil).Times(1)

		admin, err := service.GetByID(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, testAdminID, admin.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		ctx, service, mockRepo, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		req := &dto.GetAdminByIDRequest{ID: testAdminID}
		mockRepo.EXPECT().GetByID(ctx, req).Return(nil, storage.ErrNotFound).Times(1)

		admin, err := service.GetByID(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNotFound)
		assert.Nil(t, admin)
	})
}
