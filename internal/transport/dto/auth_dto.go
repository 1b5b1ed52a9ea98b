package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GetAdminByEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type GetAdminByIDRequest struct {
	ID uuid.UUID `json:"-" validate:"required"`
}

// AdminResponse never carries the password hash.
type AdminResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Admin AdminResponse `json:"admin"`
	Token string        `json:"token"`
}
