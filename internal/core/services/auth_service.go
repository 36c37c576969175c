package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/adapters/persistence/repositories"
	"syntra/internal/config"
	"syntra/internal/pkg/jwt"
	"syntra/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrNoSuchUser         = errors.New("no user found with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrEmailSendFailed    = errors.New("failed to send verification email")
)

// OTP codes expire after 10 minutes
const otpTTL = 10 * time.Minute

// AuthService handles registration, login and session minting
type AuthService struct {
	userRepo repositories.UserRepository
	otpRepo  repositories.OtpRepository
	email    EmailSender
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	otpRepo repositories.OtpRepository,
	email EmailSender,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		email:    email,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	SessionToken string               `json:"session_token"`
}

// Register creates an UNVERIFIED user plus its email OTP and sends the
// code. The user and OTP rows are written atomically; the email send is
// awaited, so a mail failure fails the whole registration.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) error {
	// 1. Check if user already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}

	// 2. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return err
	}

	// 3. Generate 6-digit OTP
	code, err := generateSecureOTP(6)
	if err != nil {
		return err
	}

	// 4. Create user + OTP atomically
	user := &models.User{
		Name:               input.Name,
		Email:              input.Email,
		HashedPassword:     hashedPassword,
		Role:               models.RoleUser,
		VerificationStatus: models.VerificationUnverified,
	}
	otp := &models.OtpCode{
		Email:     input.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}

	if err := s.userRepo.CreateWithOTP(ctx, user, otp); err != nil {
		return err
	}

	// 5. Send the code
	if err := s.email.Send(input.Email, "Verify your email - Syntra", OTPEmailBody(code)); err != nil {
		log.Printf("❌ OTP email failed for %s: %v", input.Email, err)
		return ErrEmailSendFailed
	}

	log.Printf("✅ User registered: %s (OTP sent)", user.Email)
	return nil
}

// VerifyOTP checks the emailed code and marks the email verified
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.otpRepo.GetValid(ctx, email, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	user, err := s.userRepo.GetByID(ctx, otp.UserID)
	if err != nil {
		return err
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// Spent codes are not reusable
	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		log.Printf("⚠️ Failed to clear OTP codes for %s: %v", email, err)
	}

	log.Printf("✅ Email verified: %s", email)
	return nil
}

// Login authenticates with email and password and mints a session
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}

	// OAuth-only accounts have no stored hash
	if user.HashedPassword == "" {
		return nil, ErrNoSuchUser
	}

	if !password.Verify(plainPassword, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.mintSession(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		SessionToken: token,
	}, nil
}

// LoginWithGoogle matches or creates a user for a federated identity
// and mints a session
func (s *AuthService) LoginWithGoogle(ctx context.Context, info *GoogleUserInfo) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// First Google sign-in creates the account
		now := time.Now()
		user = &models.User{
			Name:               info.Name,
			Email:              info.Email,
			Image:              info.Picture,
			Role:               models.RoleUser,
			VerificationStatus: models.VerificationUnverified,
			EmailVerifiedAt:    &now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("✅ User created via Google: %s", user.Email)
	}

	token, err := s.mintSession(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		SessionToken: token,
	}, nil
}

// RefreshSessionInput carries the caller-supplied claim overrides
type RefreshSessionInput struct {
	VerificationStatus string `json:"verification_status"`
	Whatsapp           string `json:"whatsapp"`
}

// RefreshSession re-mints the session token with caller-supplied claim
// fields. The caller is trusted to be the session owner revalidating
// after a verification round-trip; the store is NOT re-read here.
func (s *AuthService) RefreshSession(claims *jwt.SessionClaims, input *RefreshSessionInput) (string, error) {
	status := claims.VerificationStatus
	if input.VerificationStatus != "" {
		status = input.VerificationStatus
	}

	whatsapp := claims.Whatsapp
	if input.Whatsapp != "" {
		whatsapp = input.Whatsapp
	}

	return jwt.GenerateSessionToken(
		claims.UserID,
		claims.Role,
		status,
		whatsapp,
		s.cfg.JWT.Secret,
		s.cfg.JWT.SessionDays,
	)
}

// ValidateSessionToken validates a session token
func (s *AuthService) ValidateSessionToken(token string) (*jwt.SessionClaims, error) {
	return jwt.ValidateSessionToken(token, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// mintSession snapshots the user row into a signed session token
func (s *AuthService) mintSession(user *models.User) (string, error) {
	return jwt.GenerateSessionToken(
		user.ID,
		user.Role,
		user.VerificationStatus,
		user.Whatsapp,
		s.cfg.JWT.Secret,
		s.cfg.JWT.SessionDays,
	)
}

// generateSecureOTP generates a cryptographically secure random OTP
func generateSecureOTP(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
