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

// Verification workflow errors
var (
	ErrInvalidSubmission      = errors.New("all verification fields are required")
	ErrDuplicateRequest       = errors.New("an active verification request already exists")
	ErrStorageFailure         = errors.New("failed to store ID image")
	ErrRequestNotFound        = errors.New("verification request not found")
	ErrInvalidDecision        = errors.New("decision must be APPROVE or REJECT")
	ErrMissingRejectionReason = errors.New("a rejection reason is required")
)

// Admin decisions
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// VerificationService runs the identity verification workflow
type VerificationService struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	uploader         storage.Uploader
	email            EmailSender
	cfg              *config.Config
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	uploader storage.Uploader,
	email EmailSender,
	cfg *config.Config,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		uploader:         uploader,
		email:            email,
		cfg:              cfg,
	}
}

// SubmitInput represents a verification submission
type SubmitInput struct {
	FullName     string
	Institution  string
	MatricOrNysc string
	Whatsapp     string
	IDImage      []byte
}

// StatusResponse reports where a user stands in the workflow
type StatusResponse struct {
	Status        string `json:"status"`
	RejectionNote string `json:"rejection_note,omitempty"`
}

// Submit files a new verification request for the user. The ID image is
// uploaded first; only after a durable URL exists are the request row and
// the user's PENDING flag written, atomically. A user with a PENDING or
// APPROVED request cannot file another one; a REJECTED user can.
func (s *VerificationService) Submit(ctx context.Context, userID uint, input *SubmitInput) (*models.VerificationRequest, error) {
	// 1. Validate claims
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Institution) == "" ||
		strings.TrimSpace(input.MatricOrNysc) == "" ||
		strings.TrimSpace(input.Whatsapp) == "" ||
		len(input.IDImage) == 0 {
		return nil, ErrInvalidSubmission
	}

	// 2. Block duplicates while PENDING or APPROVED
	if _, err := s.verificationRepo.GetActiveByUserID(ctx, userID); err == nil {
		return nil, ErrDuplicateRequest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. Store the evidence before touching the database
	imageURL, err := s.uploader.UploadImage(ctx, input.IDImage, s.cfg.Cloudinary.Folder)
	if err != nil {
		log.Printf("❌ ID image upload failed for user %d: %v", userID, err)
		return nil, ErrStorageFailure
	}

	// 4. Write request + user flag atomically
	req := &models.VerificationRequest{
		UserID:       userID,
		FullName:     strings.TrimSpace(input.FullName),
		Institution:  strings.TrimSpace(input.Institution),
		MatricOrNysc: strings.TrimSpace(input.MatricOrNysc),
		Whatsapp:     strings.TrimSpace(input.Whatsapp),
		IDImageURL:   imageURL,
	}

	if err := s.verificationRepo.CreatePending(ctx, req); err != nil {
		return nil, err
	}

	log.Printf("✅ Verification request %d submitted by user %d", req.ID, userID)
	return req, nil
}

// Status returns the user's latest verification standing. The rejection
// note is only surfaced while the latest request is REJECTED.
func (s *VerificationService) Status(ctx context.Context, userID uint) (*StatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &StatusResponse{Status: user.VerificationStatus}

	if user.VerificationStatus == models.VerificationRejected {
		latest, err := s.verificationRepo.GetLatestByUserID(ctx, userID)
		if err == nil && latest.Status == models.VerificationRejected {
			resp.RejectionNote = latest.RejectionNote
		}
	}

	return resp, nil
}

// ListPending returns PENDING requests for the admin review queue
func (s *VerificationService) ListPending(ctx context.Context, offset, limit int) ([]*models.VerificationRequest, int64, error) {
	return s.verificationRepo.ListByStatus(ctx, models.VerificationPending, offset, limit)
}

// Decide applies an admin decision to a request. APPROVE flips the
// request and its owner to APPROVED; REJECT requires a reason and flips
// both to REJECTED. Both rows change together or not at all. The
// decision email is best-effort.
func (s *VerificationService) Decide(ctx context.Context, requestID uint, decision, note string) (*models.VerificationRequest, error) {
	var status string
	switch decision {
	case DecisionApprove:
		status = models.VerificationApproved
	case DecisionReject:
		if strings.TrimSpace(note) == "" {
			return nil, ErrMissingRejectionReason
		}
		status = models.VerificationRejected
	default:
		return nil, ErrInvalidDecision
	}

	req, user, err := s.verificationRepo.Decide(ctx, requestID, status, strings.TrimSpace(note))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	log.Printf("✅ Verification request %d decided: %s (user %d)", req.ID, status, user.ID)

	// Notify the applicant; a mail failure does not undo the decision
	if s.email != nil {
		if err := s.email.Send(user.Email, "Your Syntra verification update", DecisionEmailBody(user.Name, status, req.RejectionNote)); err != nil {
			log.Printf("⚠️ Decision email failed for %s: %v", user.Email, err)
		}
	}

	return req, nil
}
