package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Marketplace errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("you do not own this listing")
	ErrInvalidProduct  = errors.New("title, price and category are required")
)

// ProductService handles marketplace listings
type ProductService struct {
	productRepo repositories.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repositories.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents a new listing
type CreateProductInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	Condition      string   `json:"condition"`
	Images         []string `json:"images"`
	WhatsappNumber string   `json:"whatsapp_number"`
}

// Create creates a new listing owned by sellerID
func (s *ProductService) Create(ctx context.Context, sellerID uint, input *CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Title) == "" || input.Price <= 0 || strings.TrimSpace(input.Category) == "" {
		return nil, ErrInvalidProduct
	}

	images, err := json.Marshal(input.Images)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Location:       input.Location,
		Condition:      input.Condition,
		Images:         images,
		WhatsappNumber: input.WhatsappNumber,
		SellerID:       sellerID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product %d listed by user %d", product.ID, sellerID)
	return product, nil
}

// GetByID returns a single listing
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// List returns listings, optionally filtered by category
func (s *ProductService) List(ctx context.Context, category string, offset, limit int) ([]*models.Product, int64, error) {
	return s.productRepo.List(ctx, category, offset, limit)
}

// SetSold marks a listing as sold. Only the seller may do this.
func (s *ProductService) SetSold(ctx context.Context, userID, productID uint, sold bool) (*models.Product, error) {
	product, err := s.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID != userID {
		return nil, ErrNotOwner
	}

	product.IsSold = sold
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a listing. Only the seller may do this.
func (s *ProductService) Delete(ctx context.Context, userID, productID uint) error {
	product, err := s.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if product.SellerID != userID {
		return ErrNotOwner
	}

	return s.productRepo.Delete(ctx, productID)
}
