package handlers

import (
	"errors"
	"strconv"

	"syntra/internal/core/services"
	"syntra/internal/pkg/pagination"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BusinessHandler handles the brand directory endpoints
type BusinessHandler struct {
	businessService *services.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Create creates a brand page
// @Summary Create brand page
// @Description Create a student brand page (verified founders only)
// @Tags Businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBusinessInput true "Brand data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /businesses [post]
func (h *BusinessHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateBusinessInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	business, err := h.businessService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBusiness):
			return response.BadRequest(c, "Name and category are required")
		default:
			return response.InternalServerError(c, "Failed to create business")
		}
	}

	return response.Created(c, "Business created successfully", fiber.Map{
		"business": business,
	})
}

// List lists brand pages
// @Summary Browse brand pages
// @Description List student brands, optionally filtered by category
// @Tags Businesses
// @Produce json
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /businesses [get]
func (h *BusinessHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	category := c.Query("category")

	businesses, total, err := h.businessService.List(c.Context(), category, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list businesses")
	}

	return response.Success(c, "Businesses retrieved", pagination.NewResponse(businesses, params, total))
}

// GetByID returns a single brand page
// @Summary Get brand page
// @Description Get one brand page by ID
// @Tags Businesses
// @Produce json
// @Param id path int true "Business ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /businesses/{id} [get]
func (h *BusinessHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid business ID")
	}

	business, err := h.businessService.GetByID(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBusinessNotFound):
			return response.NotFound(c, "Business not found")
		default:
			return response.InternalServerError(c, "Failed to get business")
		}
	}

	return response.Success(c, "Business retrieved", fiber.Map{
		"business": business,
	})
}
