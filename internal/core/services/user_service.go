package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/adapters/persistence/repositories"
	"syntra/internal/adapters/storage"
	"syntra/internal/config"

	"gorm.io/gorm"
)

// Profile errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidProfile = errors.New("nothing to update")
)

// UserService handles profile management
type UserService struct {
	userRepo repositories.UserRepository
	uploader storage.Uploader
	cfg      *config.Config
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, uploader storage.Uploader, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
		cfg:      cfg,
	}
}

// UpdateDetailsInput represents a profile details update
type UpdateDetailsInput struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Whatsapp string `json:"whatsapp"`
}

// GetByID returns a user's profile
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateDetails updates the user's own profile fields. Empty fields are
// left untouched.
func (s *UserService) UpdateDetails(ctx context.Context, userID uint, input *UpdateDetailsInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" &&
		strings.TrimSpace(input.Bio) == "" &&
		strings.TrimSpace(input.Whatsapp) == "" {
		return nil, ErrInvalidProfile
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.Name); v != "" {
		user.Name = v
	}
	if v := strings.TrimSpace(input.Bio); v != "" {
		user.Bio = v
	}
	if v := strings.TrimSpace(input.Whatsapp); v != "" {
		user.Whatsapp = v
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePhoto uploads a new profile photo and stores its URL
func (s *UserService) UpdatePhoto(ctx context.Context, userID uint, image []byte) (*models.User, error) {
	if len(image) == 0 {
		return nil, ErrInvalidProfile
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.UploadImage(ctx, image, "syntra-profile-photos")
	if err != nil {
		log.Printf("❌ Profile photo upload failed for user %d: %v", userID, err)
		return nil, ErrStorageFailure
	}

	user.Image = imageURL
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
