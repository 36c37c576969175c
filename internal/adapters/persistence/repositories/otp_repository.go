package repositories

import (
	"context"
	"time"

	"syntra/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// otpRepository implements OtpRepository interface
type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

// GetValid gets an unexpired OTP code for the given email
func (r *otpRepository) GetValid(ctx context.Context, email, code string) (*models.OtpCode, error) {
	var otp models.OtpCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expires_at > ?", email, code, time.Now()).
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// DeleteByEmail removes all OTP codes for an email (after successful verification)
func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.OtpCode{}).Error
}

// DeleteExpired removes expired OTP codes, returning the purged count
func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.OtpCode{})
	return result.RowsAffected, result.Error
}
