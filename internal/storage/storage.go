package storage

import (
	"context"

	"careers-api/internal/models"
	"careers-api/internal/transport/dto"

	"github.com/google/uuid"
)

// ApplicationRepository defines the interface for application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	// List returns one page of applications matching the filters plus the
	// total match count, sorted by creation time descending.
	List(ctx context.Context, req *dto.ListApplicationsRequest) ([]*models.Application, int, error)
	Update(ctx context.Context, app *models.Application) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminRepository defines the interface for reviewer account persistence.
type AdminRepository interface {
	Create(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Admin, error)
	GetByEmail(ctx context.Context, req *dto.GetAdminByEmailRequest) (*models.Admin, error)
	GetByID(ctx context.Context, req *dto.GetAdminByIDRequest) (*models.Admin, error)
}

// FileStore accepts a binary blob plus a logical category and returns a
// durable retrievable locator (URL). Deletion is by locator.
type FileStore interface {
	Upload(ctx context.Context, data []byte, category string) (string, error)
	Delete(ctx context.Context, locator string) error
}
