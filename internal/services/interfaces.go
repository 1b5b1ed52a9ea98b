package services

import (
	"context"

	"careers-api/internal/models"
	"careers-api/internal/transport/dto"
)

// ApplicationService defines the interface for application business logic.
type ApplicationService interface {
	Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, req *dto.GetApplicationByIDRequest) (*models.Application, error)
	List(ctx context.Context, req *dto.ListApplicationsRequest) ([]*models.Application, dto.Pagination, error)
	Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error
}

// AuthService defines the interface for admin authentication.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Admin, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.Admin, string, error)
	GetByID(ctx context.Context, req *dto.GetAdminByIDRequest) (*models.Admin, error)
}

// StatusNotifier is the outbound notification dependency of the
// application service. The concrete implementation lives in internal/notify.
type StatusNotifier interface {
	ApplicationReceived(ctx context.Context, app *models.Application) error
	StatusChanged(ctx context.Context, app *models.Application, change models.StatusChange) error
}
