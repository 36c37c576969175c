package handlers

import (
	"errors"
	"io"

	"syntra/internal/core/services"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles profile management endpoints
type ProfileHandler struct {
	userService *services.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// UpdateDetailsRequest represents a profile update body
type UpdateDetailsRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Whatsapp string `json:"whatsapp"`
}

// UpdateDetails updates the caller's profile fields
// @Summary Update profile details
// @Description Update name, bio and WhatsApp number
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateDetailsRequest true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile/details [patch]
func (h *ProfileHandler) UpdateDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req UpdateDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateDetails(c.Context(), userID, &services.UpdateDetailsInput{
		Name:     req.Name,
		Bio:      req.Bio,
		Whatsapp: req.Whatsapp,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProfile):
			return response.BadRequest(c, "Provide at least one field to update")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// UpdatePhoto updates the caller's profile photo
// @Summary Update profile photo
// @Description Upload a new profile photo
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Profile photo"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile/photo [patch]
func (h *ProfileHandler) UpdatePhoto(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.BadRequest(c, "Photo is required")
	}
	if fileHeader.Size > maxIDImageBytes {
		return response.BadRequest(c, "Photo must be 5MB or smaller")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Could not read photo")
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return response.BadRequest(c, "Could not read photo")
	}

	user, err := h.userService.UpdatePhoto(c.Context(), userID, image)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStorageFailure):
			return response.InternalServerError(c, "Could not store your photo, please try again")
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to update photo")
		}
	}

	return response.Success(c, "Photo updated successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}
