package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"careers-api/internal/models"
	"careers-api/internal/storage"
	"careers-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AdminRepo implements the storage.AdminRepository interface using pgx.
type AdminRepo struct {
	pool *pgxpool.Pool
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(pool *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

var _ storage.AdminRepository = (*AdminRepo)(nil)

const adminColumns = `id, name, email, password_hash, created_at, updated_at`

// Create a new admin account, hashing the password before storing it.
func (r *AdminRepo) Create(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Admin, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password for email %s: %v\n", req.Email, err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `INSERT INTO admins (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING ` + adminColumns

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, uuid.New(), req.Name, req.Email, string(hashedPassword)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			log.Printf("Attempted to create admin with duplicate email %s\n", req.Email)
			return nil, storage.ErrDuplicateEmail
		}
		log.Printf("Error creating admin with email %s: %v\n", req.Email, err)
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	log.Printf("Admin created successfully with ID: %s", admin.ID)
	return admin, nil
}

func (r *AdminRepo) GetByEmail(ctx context.Context, req *dto.GetAdminByEmailRequest) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, req.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Admin not found with email: %s\n", req.Email)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error getting admin by email %s: %v\n", req.Email, err)
		return nil, err
	}

	return admin, nil
}

func (r *AdminRepo) GetByID(ctx context.Context, req *dto.GetAdminByIDRequest) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, req.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Admin not found with ID: %s\n", req.ID)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error getting admin by ID %s: %v\n", req.ID, err)
		return nil, err
	}

	return admin, nil
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var admin models.Admin
	err := row.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
