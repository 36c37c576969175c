package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Brand directory errors
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrInvalidBusiness  = errors.New("name and category are required")
)

// BusinessService handles the student brand directory
type BusinessService struct {
	businessRepo repositories.BusinessRepository
}

// NewBusinessService creates a new business service
func NewBusinessService(businessRepo repositories.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

// CreateBusinessInput represents a new brand page
type CreateBusinessInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Whatsapp    string `json:"whatsapp"`
	Instagram   string `json:"instagram"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`
}

// Create creates a brand page owned by ownerID
func (s *BusinessService) Create(ctx context.Context, ownerID uint, input *CreateBusinessInput) (*models.Business, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return nil, ErrInvalidBusiness
	}

	business := &models.Business{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
		Whatsapp:    input.Whatsapp,
		Instagram:   input.Instagram,
		Logo:        input.Logo,
		Banner:      input.Banner,
		OwnerID:     ownerID,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	log.Printf("✅ Business %d created by user %d", business.ID, ownerID)
	return business, nil
}

// GetByID returns a single brand page
func (s *BusinessService) GetByID(ctx context.Context, id uint) (*models.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

// List returns brand pages, optionally filtered by category
func (s *BusinessService) List(ctx context.Context, category string, offset, limit int) ([]*models.Business, int64, error) {
	return s.businessRepo.List(ctx, category, offset, limit)
}
