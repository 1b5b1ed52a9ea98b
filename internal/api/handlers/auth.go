package handlers

import (
	"errors"
	"log"
	"net/http"

	"careers-api/internal/api/middleware"
	"careers-api/internal/services"
	"careers-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler holds dependencies for admin authentication operations.
type AuthHandler struct {
	service   services.AuthService
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validate,
	}
}

// Compile-time check to ensure AuthHandler implements AuthHandlerInterface
var _ AuthHandlerInterface = (*AuthHandler)(nil)

// Register godoc
//	@Summary		Register an admin account
//	@Description	Creates a reviewer account. Requires an authenticated admin.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterAdminRequest	true	"New admin details"
//	@Success		201		{object}	dto.Envelope	"Admin created"
//	@Failure		400		{object}	dto.Envelope	"Bad Request - Validation failed"
//	@Failure		401		{object}	dto.Envelope	"Unauthorized"
//	@Failure		409		{object}	dto.Envelope	"Conflict - Email already registered"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/auth/register [post]
//	@Security		BearerAuth
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(FormatValidationErrors(err)))
		return
	}

	admin, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, dto.Fail("Email already registered"))
		} else {
			log.Printf("Register: Error registering admin: %v", err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to register admin"))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OK(MapAdminToResponse(admin)))
}

// Login godoc
//	@Summary		Admin login
//	@Description	Verifies admin credentials and returns a signed JWT.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequest	true	"Credentials"
//	@Success		200		{object}	dto.Envelope	"Admin and token"
//	@Failure		400		{object}	dto.Envelope	"Bad Request - Validation failed"
//	@Failure		401		{object}	dto.Envelope	"Invalid credentials"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(FormatValidationErrors(err)))
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid email or password"))
		} else {
			log.Printf("Login: Error logging in admin %s: %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to log in"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.LoginResponse{
		Admin: MapAdminToResponse(admin),
		Token: token,
	}))
}

// Verify godoc
//	@Summary		Verify the current session
//	@Description	Returns the authenticated admin's account for a valid token.
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.Envelope	"Authenticated admin"
//	@Failure		401	{object}	dto.Envelope	"Unauthorized"
//	@Failure		500	{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/auth/verify [get]
//	@Security		BearerAuth
func (h *AuthHandler) Verify(c *gin.Context) {
	adminID, err := middleware.GetAdminIDFromContext(c)
	if err != nil {
		log.Printf("Verify: Error getting admin ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	admin, err := h.service.GetByID(c.Request.Context(), &dto.GetAdminByIDRequest{ID: adminID})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		} else {
			log.Printf("Verify: Error fetching admin %s: %v", adminID, err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to verify session"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.OK(MapAdminToResponse(admin)))
}
