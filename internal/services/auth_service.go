package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"careers-api/internal/models"
	"careers-api/internal/storage"
	"careers-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	repo          storage.AdminRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(repo storage.AdminRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	return &authService{
		repo:          repo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Admin, error) {
	admin, err := s.repo.Create(ctx, req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Printf("AuthService: Error creating admin: %v", err)
		return nil, fmt.Errorf("internal error creating admin: %w", err)
	}
	return admin, nil
}

// Login authenticates the admin and issues a short-lived HS256 token.
// Unknown email and bad password produce the same error so nothing leaks.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*models.Admin, string, error) {
	emailReq := dto.GetAdminByEmailRequest{Email: req.Email}
	admin, err := s.repo.GetByEmail(ctx, &emailReq)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: admin not found", req.Email)
			return nil, "", ErrInvalidCredentials
		}
		log.Printf("Error fetching admin by email %s during login: %v", req.Email, err)
		return nil, "", fmt.Errorf("internal error during login: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password))
	if err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", req.Email)
		return nil, "", ErrInvalidCredentials
	}

	// Generate JWT Token
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwt.RegisteredClaims{
		Subject:   admin.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("Error generating JWT token for admin %s: %v", admin.Email, err)
		return nil, "", fmt.Errorf("failed to generate login token: %w", err)
	}

	return admin, tokenString, nil
}

func (s *authService) GetByID(ctx context.Context, req *dto.GetAdminByIDRequest) (*models.Admin, error) {
	admin, err := s.repo.GetByID(ctx, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("internal error fetching admin: %w", err)
	}
	return admin, nil
}
