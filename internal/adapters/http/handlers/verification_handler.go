package handlers

import (
	"errors"
	"io"

	"syntra/internal/core/services"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Evidence images are capped at 5MB
const maxIDImageBytes = 5 << 20

// VerificationHandler handles the user side of identity verification
type VerificationHandler struct {
	verificationService *services.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// Submit files a verification request
// @Summary Submit verification request
// @Description Submit identity claims with an ID image for admin review
// @Tags Verification
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param fullName formData string true "Full name"
// @Param institution formData string true "Institution"
// @Param matricOrNysc formData string true "Matric or NYSC number"
// @Param whatsapp formData string true "WhatsApp number"
// @Param idImage formData file true "ID image"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /verification/submit [post]
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fileHeader, err := c.FormFile("idImage")
	if err != nil {
		return response.BadRequest(c, "ID image is required")
	}
	if fileHeader.Size > maxIDImageBytes {
		return response.BadRequest(c, "ID image must be 5MB or smaller")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Could not read ID image")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return response.BadRequest(c, "Could not read ID image")
	}

	input := &services.SubmitInput{
		FullName:     c.FormValue("fullName"),
		Institution:  c.FormValue("institution"),
		MatricOrNysc: c.FormValue("matricOrNysc"),
		Whatsapp:     c.FormValue("whatsapp"),
		IDImage:      image,
	}

	if _, err := h.verificationService.Submit(c.Context(), userID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSubmission):
			return response.BadRequest(c, "All fields and an ID image are required")
		case errors.Is(err, services.ErrDuplicateRequest):
			return response.Conflict(c, "You already have an active verification request")
		case errors.Is(err, services.ErrStorageFailure):
			return response.InternalServerError(c, "Could not store your ID image, please try again")
		default:
			return response.InternalServerError(c, "Failed to submit verification request")
		}
	}

	return response.Created(c, "Verification request submitted", nil)
}

// Status returns the caller's verification standing
// @Summary Get verification status
// @Description Get the current user's verification status and any rejection note
// @Tags Verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /verification/status [get]
func (h *VerificationHandler) Status(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	status, err := h.verificationService.Status(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get verification status")
	}

	return response.Success(c, "Verification status retrieved", status)
}
