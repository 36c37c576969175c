package handlers

import (
	"errors"
	"strconv"

	"syntra/internal/core/services"
	"syntra/internal/pkg/pagination"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles marketplace endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// SetSoldRequest represents a sold-state update body
type SetSoldRequest struct {
	IsSold bool `json:"is_sold"`
}

// Create creates a new listing
// @Summary Create listing
// @Description Create a marketplace listing (verified sellers only)
// @Tags Marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProductInput true "Listing data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProduct):
			return response.BadRequest(c, "Title, price and category are required")
		default:
			return response.InternalServerError(c, "Failed to create listing")
		}
	}

	return response.Created(c, "Listing created successfully", fiber.Map{
		"product": product,
	})
}

// List lists marketplace listings
// @Summary Browse listings
// @Description List marketplace listings, optionally filtered by category
// @Tags Marketplace
// @Produce json
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	category := c.Query("category")

	products, total, err := h.productService.List(c.Context(), category, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}

	return response.Success(c, "Products retrieved", pagination.NewResponse(products, params, total))
}

// GetByID returns a single listing
// @Summary Get listing
// @Description Get one marketplace listing by ID
// @Tags Marketplace
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productService.GetByID(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		default:
			return response.InternalServerError(c, "Failed to get product")
		}
	}

	return response.Success(c, "Product retrieved", fiber.Map{
		"product": product,
	})
}

// SetSold marks a listing as sold or available
// @Summary Update sold state
// @Description Mark your listing as sold or available again
// @Tags Marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body SetSoldRequest true "Sold state"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id}/sold [patch]
func (h *ProductHandler) SetSold(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req SetSoldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.SetSold(c.Context(), userID, uint(id), req.IsSold)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, services.ErrNotOwner):
			return response.Forbidden(c, "You do not own this listing")
		default:
			return response.InternalServerError(c, "Failed to update listing")
		}
	}

	return response.Success(c, "Listing updated", fiber.Map{
		"product": product,
	})
}

// Delete removes a listing
// @Summary Delete listing
// @Description Delete your marketplace listing
// @Tags Marketplace
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(c.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, services.ErrNotOwner):
			return response.Forbidden(c, "You do not own this listing")
		default:
			return response.InternalServerError(c, "Failed to delete listing")
		}
	}

	return response.Success(c, "Listing deleted", nil)
}
