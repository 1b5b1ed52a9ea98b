package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"careers-api/internal/models"
	"careers-api/internal/services"
	"careers-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// maxUploadSize bounds each uploaded document.
const maxUploadSize = 5 * 1024 * 1024

// fileFormKeys maps multipart form field names to document kinds.
var fileFormKeys = map[string]models.DocumentKind{
	"nationalIdFront":       models.DocNationalIDFront,
	"nationalIdBack":        models.DocNationalIDBack,
	"educationCertificate":  models.DocEducationCertificate,
	"cv":                    models.DocCV,
	"graduationCertificate": models.DocGraduationCertificate,
	"pharmacistLicense":     models.DocPharmacistLicense,
	"syndicateCard":         models.DocSyndicateCard,
}

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validate,
	}
}

// Compile-time check to ensure ApplicationHandler implements ApplicationHandlerInterface
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)

// CreateApplication godoc
//	@Summary		Submit a job application
//	@Description	Accepts a multipart form with applicant fields, an experiences JSON array, and the required document files. Public endpoint.
//	@Tags			applications
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201	{object}	dto.Envelope	"Application created"
//	@Failure		400	{object}	dto.Envelope	"Bad Request - Validation failed or documents missing"
//	@Failure		500	{object}	dto.Envelope	"Internal Server Error"
//	@Router			/applications [post]
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	req, err := h.parseCreateForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(FormatValidationErrors(err)))
		return
	}

	application, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrMissingDocuments) || errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		} else {
			log.Printf("CreateApplication: Error creating application: %v", err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to submit application"))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.CreateApplicationResponse{ApplicationID: application.ID}))
}

func (h *ApplicationHandler) parseCreateForm(c *gin.Context) (*dto.CreateApplicationRequest, error) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errors.New("invalid multipart form")
	}

	req := &dto.CreateApplicationRequest{
		FullName:       c.PostForm("fullName"),
		Email:          c.PostForm("email"),
		Phone:          c.PostForm("phone"),
		NationalID:     c.PostForm("nationalId"),
		Address:        c.PostForm("address"),
		SelectedJob:    models.Job(c.PostForm("selectedJob")),
		EducationLevel: models.EducationLevel(c.PostForm("educationLevel")),
		Transportation: models.Transportation(c.PostForm("transportation")),
		Files:          make(map[models.DocumentKind][]byte),
	}

	if raw := c.PostForm("experiences"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Experiences); err != nil {
			return nil, errors.New("experiences must be a valid JSON array")
		}
	}

	for formKey, kind := range fileFormKeys {
		fileHeader, err := c.FormFile(formKey)
		if err != nil {
			continue // Absent files are checked against requirements by the service.
		}
		if fileHeader.Size > maxUploadSize {
			return nil, errors.New("file " + formKey + " exceeds the 5MB limit")
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, errors.New("failed to read file " + formKey)
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
		file.Close()
		if err != nil || int64(len(data)) > maxUploadSize {
			return nil, errors.New("failed to read file " + formKey)
		}
		req.Files[kind] = data
	}

	return req, nil
}

// ListApplications godoc
//	@Summary		List applications
//	@Description	Retrieves a paginated list of applications with optional status, job and search filters. Admin only.
//	@Tags			applications
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"
//	@Param			job		query		string	false	"Filter by selected job"
//	@Param			search	query		string	false	"Substring match over name and national ID"
//	@Param			page	query		int		false	"Page number"	default(1)
//	@Param			limit	query		int		false	"Page size"		default(10)
//	@Success		200		{object}	dto.Envelope	"One page of applications"
//	@Failure		400		{object}	dto.Envelope	"Bad Request - Invalid query parameters"
//	@Failure		401		{object}	dto.Envelope	"Unauthorized"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/applications [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid query parameters: "+err.Error()))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(FormatValidationErrors(err)))
		return
	}

	applications, pagination, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		log.Printf("ListApplications: Error listing applications: %v", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve applications"))
		return
	}

	summaries := make([]dto.ApplicationSummary, 0, len(applications))
	for _, app := range applications {
		summaries = append(summaries, MapApplicationToSummary(app))
	}

	c.JSON(http.StatusOK, dto.OK(dto.ListApplicationsResponse{
		Applications: summaries,
		Pagination:   pagination,
	}))
}

// GetApplicationByID godoc
//	@Summary		Get an application by ID
//	@Description	Retrieves the full application record including documents, experiences and status history. Admin only.
//	@Tags			applications
//	@Produce		json
//	@Param			id	path		string	true	"Application ID"	Format(uuid)
//	@Success		200	{object}	dto.Envelope	"Full application record"
//	@Failure		400	{object}	dto.Envelope	"Invalid ID format"
//	@Failure		401	{object}	dto.Envelope	"Unauthorized"
//	@Failure		404	{object}	dto.Envelope	"Application Not Found"
//	@Failure		500	{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/applications/{id} [get]
//	@Security		BearerAuth
func (h *ApplicationHandler) GetApplicationByID(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid application ID format"))
		return
	}

	req := dto.GetApplicationByIDRequest{ID: appID}

	application, err := h.service.GetByID(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Application not found"))
		} else {
			log.Printf("GetApplicationByID: Error fetching application %s: %v", appID, err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve application"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.OK(application))
}

// UpdateApplication godoc
//	@Summary		Review an application
//	@Description	Applies any subset of status change (with optional note), manual score, and admin notes. A status change appends one history entry and dispatches the matching notification. Admin only.
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Application ID"	Format(uuid)
//	@Param			request	body		dto.UpdateApplicationRequest	true	"Fields to update"
//	@Success		200		{object}	dto.Envelope	"Updated application"
//	@Failure		400		{object}	dto.Envelope	"Bad Request - Invalid ID or payload"
//	@Failure		401		{object}	dto.Envelope	"Unauthorized"
//	@Failure		404		{object}	dto.Envelope	"Application Not Found"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/applications/{id} [patch]
//	@Security		BearerAuth
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid application ID format"))
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}
	req.ID = appID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(FormatValidationErrors(err)))
		return
	}

	application, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Application not found"))
		} else if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		} else {
			log.Printf("UpdateApplication: Error updating application %s: %v", appID, err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to update application"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.OK(application))
}

// DeleteApplication godoc
//	@Summary		Delete an application
//	@Description	Removes the application record and attempts to clean up its stored documents. Admin only.
//	@Tags			applications
//	@Produce		json
//	@Param			id	path	string	true	"Application ID"	Format(uuid)
//	@Success		204	"Application deleted"
//	@Failure		400	{object}	dto.Envelope	"Invalid ID format"
//	@Failure		401	{object}	dto.Envelope	"Unauthorized"
//	@Failure		404	{object}	dto.Envelope	"Application Not Found"
//	@Failure		500	{object}	dto.Envelope	"Internal Server Error"
//	@Router			/admin/applications/{id} [delete]
//	@Security		BearerAuth
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid application ID format"))
		return
	}

	req := dto.DeleteApplicationRequest{ID: appID}

	if err := h.service.Delete(c.Request.Context(), &req); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Application not found"))
		} else {
			log.Printf("DeleteApplication: Error deleting application %s: %v", appID, err)
			c.JSON(http.StatusInternalServerError, dto.Fail("Failed to delete application"))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
