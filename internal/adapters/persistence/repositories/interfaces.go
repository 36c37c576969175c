package repositories

import (
	"context"

	"syntra/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateWithOTP(ctx context.Context, user *models.User, otp *models.OtpCode) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// OtpRepository defines OTP code repository interface
type OtpRepository interface {
	GetValid(ctx context.Context, email, code string) (*models.OtpCode, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// VerificationRepository defines verification request repository
// interface. CreatePending and Decide are the two multi-row writes of
// the workflow; implementations must apply both rows atomically.
type VerificationRepository interface {
	// GetActiveByUserID returns the user's PENDING or APPROVED request,
	// or gorm.ErrRecordNotFound when only REJECTED history (or nothing)
	// exists.
	GetActiveByUserID(ctx context.Context, userID uint) (*models.VerificationRequest, error)
	GetLatestByUserID(ctx context.Context, userID uint) (*models.VerificationRequest, error)
	GetByID(ctx context.Context, id uint) (*models.VerificationRequest, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.VerificationRequest, int64, error)
	// CreatePending inserts the request with status PENDING and flips
	// the owning user's verification_status to PENDING, both or neither.
	CreatePending(ctx context.Context, req *models.VerificationRequest) error
	// Decide flips the request and the owning user to the given
	// terminal status (storing note on the request), both or neither.
	Decide(ctx context.Context, requestID uint, status, note string) (*models.VerificationRequest, *models.User, error)
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, category string, offset, limit int) ([]*models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// BusinessRepository defines business repository interface
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uint) (*models.Business, error)
	List(ctx context.Context, category string, offset, limit int) ([]*models.Business, int64, error)
}
