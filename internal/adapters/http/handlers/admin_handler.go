package handlers

import (
	"errors"
	"strconv"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/core/services"
	"syntra/internal/pkg/pagination"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin review queue
type AdminHandler struct {
	verificationService *services.VerificationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(verificationService *services.VerificationService) *AdminHandler {
	return &AdminHandler{verificationService: verificationService}
}

// RejectRequest represents a rejection body
type RejectRequest struct {
	Note string `json:"note"`
}

// ListPending lists PENDING verification requests
// @Summary List pending verification requests
// @Description Get the paginated admin review queue
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/verifications [get]
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	requests, total, err := h.verificationService.ListPending(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list verification requests")
	}

	items := make([]*models.VerificationRequestResponse, 0, len(requests))
	for _, req := range requests {
		items = append(items, req.ToResponse())
	}

	return response.Success(c, "Verification requests retrieved", pagination.NewResponse(items, params, total))
}

// Approve approves a verification request
// @Summary Approve verification request
// @Description Approve the request and mark its owner APPROVED
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/verifications/{id}/approve [post]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, services.DecisionApprove, "")
}

// Reject rejects a verification request
// @Summary Reject verification request
// @Description Reject the request with a reason and mark its owner REJECTED
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body RejectRequest true "Rejection note"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/verifications/{id}/reject [post]
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return h.decide(c, services.DecisionReject, req.Note)
}

// decide applies one admin decision to the request in the URL
func (h *AdminHandler) decide(c *fiber.Ctx, decision, note string) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	req, err := h.verificationService.Decide(c.Context(), uint(id), decision, note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Verification request not found")
		case errors.Is(err, services.ErrMissingRejectionReason):
			return response.BadRequest(c, "A rejection reason is required")
		case errors.Is(err, services.ErrInvalidDecision):
			return response.BadRequest(c, "Invalid decision")
		default:
			return response.InternalServerError(c, "Failed to apply decision")
		}
	}

	return response.Success(c, "Decision applied", fiber.Map{
		"request": req.ToResponse(),
	})
}
