package repositories

import (
	"context"

	"syntra/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// businessRepository implements BusinessRepository interface
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create creates a new business
func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

// GetByID gets a business by ID
func (r *businessRepository) GetByID(ctx context.Context, id uint) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// List lists businesses with optional category filter, newest first
func (r *businessRepository) List(ctx context.Context, category string, offset, limit int) ([]*models.Business, int64, error) {
	var businesses []*models.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Business{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}
