package repositories

import (
	"context"

	"syntra/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// verificationRepository implements VerificationRepository interface
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

// GetActiveByUserID gets the user's PENDING or APPROVED request
func (r *verificationRepository) GetActiveByUserID(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{models.VerificationPending, models.VerificationApproved}).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetLatestByUserID gets the user's most recent request
func (r *verificationRepository) GetLatestByUserID(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByID gets a request by ID
func (r *verificationRepository) GetByID(ctx context.Context, id uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByStatus lists requests with the given status, newest first
func (r *verificationRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.VerificationRequest, int64, error) {
	var requests []*models.VerificationRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.VerificationRequest{}).Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// CreatePending inserts the request (status PENDING) and flips the
// owning user's verification_status to PENDING in one transaction
func (r *verificationRepository) CreatePending(ctx context.Context, req *models.VerificationRequest) error {
	req.Status = models.VerificationPending

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", req.UserID).
			Update("verification_status", models.VerificationPending).Error
	})
}

// Decide flips the request and the owning user to the given terminal
// status in one transaction, storing the note on the request
func (r *verificationRepository) Decide(ctx context.Context, requestID uint, status, note string) (*models.VerificationRequest, *models.User, error) {
	var req models.VerificationRequest
	var user models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&req).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": status}
		if note != "" {
			updates["rejection_note"] = note
		}
		if err := tx.Model(&req).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", req.UserID).
			Update("verification_status", status).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", req.UserID).First(&user).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &req, &user, nil
}
