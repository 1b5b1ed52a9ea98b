package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"careers-api/internal/models"
	"careers-api/internal/transport/dto"
	"careers-api/internal/wizard"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the submission wizard over HTTP. Each applicant
// session is identified by the opaque ID returned from Start.
type WizardHandler struct {
	machine *wizard.Machine
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(machine *wizard.Machine) *WizardHandler {
	return &WizardHandler{machine: machine}
}

// Compile-time check to ensure WizardHandler implements WizardHandlerInterface
var _ WizardHandlerInterface = (*WizardHandler)(nil)

// StartWizard godoc
//	@Summary		Start a wizard session
//	@Description	Opens a fresh submission wizard session positioned at job selection.
//	@Tags			wizard
//	@Produce		json
//	@Success		201	{object}	dto.Envelope	"New session ID"
//	@Failure		500	{object}	dto.Envelope	"Internal Server Error"
//	@Router			/wizard [post]
func (h *WizardHandler) StartWizard(c *gin.Context) {
	session, err := h.machine.Start(c.Request.Context())
	if err != nil {
		log.Printf("StartWizard: Error starting session: %v", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to start wizard session"))
		return
	}

	c.JSON(http.StatusCreated, dto.OK(gin.H{"session": session}))
}

// GetWizardState godoc
//	@Summary		Get wizard state
//	@Description	Returns the session's current step, its step order, and everything saved so far.
//	@Tags			wizard
//	@Produce		json
//	@Param			session	path		string	true	"Session ID"
//	@Success		200		{object}	dto.Envelope	"Wizard snapshot"
//	@Failure		404		{object}	dto.Envelope	"Session not found"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/wizard/{session} [get]
func (h *WizardHandler) GetWizardState(c *gin.Context) {
	session := c.Param("session")

	snapshot, err := h.machine.State(c.Request.Context(), session)
	if err != nil {
		h.writeWizardError(c, session, "GetWizardState", err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.OK(snapshot))
}

// SaveWizardStep godoc
//	@Summary		Save a wizard step
//	@Description	Validates and persists the payload for the named step. The current step advances on success; a failed validation stores nothing and returns per-field errors.
//	@Tags			wizard
//	@Accept			json
//	@Produce		json
//	@Param			session	path		string	true	"Session ID"
//	@Param			step	path		string	true	"Step name"
//	@Success		200		{object}	dto.Envelope	"Next step"
//	@Failure		400		{object}	dto.Envelope	"Validation failed"
//	@Failure		404		{object}	dto.Envelope	"Session not found"
//	@Failure		409		{object}	dto.Envelope	"Step not reachable"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/wizard/{session}/steps/{step} [put]
func (h *WizardHandler) SaveWizardStep(c *gin.Context) {
	session := c.Param("session")
	step := wizard.Step(c.Param("step"))

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Failed to read request body"))
		return
	}
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	next, fieldErrors, err := h.machine.SaveStep(c.Request.Context(), session, step, json.RawMessage(payload))
	if err != nil {
		h.writeWizardError(c, session, "SaveWizardStep", err, fieldErrors)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"current_step": next}))
}

// SaveWizardFile godoc
//	@Summary		Upload a wizard document
//	@Description	Stores one document in the draft, keyed by its kind. The file is held until final submission.
//	@Tags			wizard
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			session	path		string	true	"Session ID"
//	@Param			kind	path		string	true	"Document kind"
//	@Param			file	formData	file	true	"Document file"
//	@Success		200		{object}	dto.Envelope	"File stored"
//	@Failure		400		{object}	dto.Envelope	"Bad Request - Missing, empty or oversized file"
//	@Failure		404		{object}	dto.Envelope	"Session not found"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/wizard/{session}/files/{kind} [put]
func (h *WizardHandler) SaveWizardFile(c *gin.Context) {
	session := c.Param("session")
	kind := models.DocumentKind(c.Param("kind"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("A file form field is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Failed to read uploaded file"))
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, wizard.MaxFileSize+1))
	file.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Failed to read uploaded file"))
		return
	}

	if err := h.machine.SaveFile(c.Request.Context(), session, kind, data); err != nil {
		h.writeWizardError(c, session, "SaveWizardFile", err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"stored": string(kind)}))
}

// WizardBack godoc
//	@Summary		Go one step back
//	@Description	Moves the session one step backward without discarding any saved input.
//	@Tags			wizard
//	@Produce		json
//	@Param			session	path		string	true	"Session ID"
//	@Success		200		{object}	dto.Envelope	"Current step after moving back"
//	@Failure		404		{object}	dto.Envelope	"Session not found"
//	@Failure		409		{object}	dto.Envelope	"Session already submitted"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/wizard/{session}/back [post]
func (h *WizardHandler) WizardBack(c *gin.Context) {
	session := c.Param("session")

	step, err := h.machine.Back(c.Request.Context(), session)
	if err != nil {
		h.writeWizardError(c, session, "WizardBack", err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"current_step": step}))
}

// SubmitWizard godoc
//	@Summary		Submit the wizard
//	@Description	Assembles every saved step and document into one application and creates it. Only allowed from the review step; a failed submission keeps the draft intact for retry.
//	@Tags			wizard
//	@Produce		json
//	@Param			session	path		string	true	"Session ID"
//	@Success		201		{object}	dto.Envelope	"Application created"
//	@Failure		400		{object}	dto.Envelope	"Draft incomplete or invalid"
//	@Failure		404		{object}	dto.Envelope	"Session not found"
//	@Failure		409		{object}	dto.Envelope	"Not at review, already submitted, or submission in flight"
//	@Failure		500		{object}	dto.Envelope	"Internal Server Error"
//	@Router			/wizard/{session}/submit [post]
func (h *WizardHandler) SubmitWizard(c *gin.Context) {
	session := c.Param("session")

	application, err := h.machine.Submit(c.Request.Context(), session)
	if err != nil {
		h.writeWizardError(c, session, "SubmitWizard", err, nil)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.CreateApplicationResponse{ApplicationID: application.ID}))
}

func (h *WizardHandler) writeWizardError(c *gin.Context, session, op string, err error, fieldErrors wizard.FieldErrors) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("Wizard session not found"))
	case errors.Is(err, wizard.ErrStepBlocked):
		if len(fieldErrors) > 0 {
			c.JSON(http.StatusBadRequest, dto.Fail(fieldErrors))
		} else {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		}
	case errors.Is(err, wizard.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, dto.Fail("File exceeds the 5MB limit"))
	case errors.Is(err, wizard.ErrStepNotAllowed),
		errors.Is(err, wizard.ErrNotAtReview),
		errors.Is(err, wizard.ErrAlreadySubmitted),
		errors.Is(err, wizard.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	default:
		log.Printf("%s: Error for session %s: %v", op, session, err)
		c.JSON(http.StatusInternalServerError, dto.Fail("Wizard operation failed"))
	}
}
