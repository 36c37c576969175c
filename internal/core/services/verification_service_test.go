package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			SessionDays: 30,
		},
		Cloudinary: config.CloudinaryConfig{
			Folder: "test-ids",
		},
	}
}

func newVerificationFixture() (*VerificationService, *fakeUserRepo, *fakeVerificationRepo, *fakeUploader, *fakeEmailSender) {
	userRepo := newFakeUserRepo()
	verificationRepo := newFakeVerificationRepo(userRepo)
	uploader := &fakeUploader{}
	email := &fakeEmailSender{}
	svc := NewVerificationService(verificationRepo, userRepo, uploader, email, testConfig())
	return svc, userRepo, verificationRepo, uploader, email
}

func validSubmitInput() *SubmitInput {
	return &SubmitInput{
		FullName:     "Jane Doe",
		Institution:  "UNILAG",
		MatricOrNysc: "190404010",
		Whatsapp:     "2348000000000",
		IDImage:      []byte("fake-jpeg-bytes"),
	}
}

func TestSubmitSuccess(t *testing.T) {
	svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})

	req, err := svc.Submit(context.Background(), user.ID, validSubmitInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if req.Status != models.VerificationPending {
		t.Errorf("expected request status PENDING, got %s", req.Status)
	}
	if user.VerificationStatus != models.VerificationPending {
		t.Errorf("expected user status PENDING, got %s", user.VerificationStatus)
	}
	if len(verificationRepo.requests) != 1 {
		t.Errorf("expected exactly one request row, got %d", len(verificationRepo.requests))
	}
}

func TestSubmitMissingFields(t *testing.T) {
	svc, userRepo, _, uploader, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"blank full name", func(in *SubmitInput) { in.FullName = "   " }},
		{"empty institution", func(in *SubmitInput) { in.Institution = "" }},
		{"empty matric", func(in *SubmitInput) { in.MatricOrNysc = "" }},
		{"empty whatsapp", func(in *SubmitInput) { in.Whatsapp = "" }},
		{"missing image", func(in *SubmitInput) { in.IDImage = nil }},
	}

	for _, tc := range cases {
		input := validSubmitInput()
		tc.mutate(input)

		if _, err := svc.Submit(context.Background(), user.ID, input); !errors.Is(err, ErrInvalidSubmission) {
			t.Errorf("%s: expected ErrInvalidSubmission, got %v", tc.name, err)
		}
	}

	if uploader.calls != 0 {
		t.Errorf("expected no upload attempts for invalid input, got %d", uploader.calls)
	}
}

func TestSubmitDuplicateWhileActive(t *testing.T) {
	for _, status := range []string{models.VerificationPending, models.VerificationApproved} {
		svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
		user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng", VerificationStatus: status})
		verificationRepo.requests[1] = &models.VerificationRequest{ID: 1, UserID: user.ID, Status: status}
		verificationRepo.nextID = 2

		if _, err := svc.Submit(context.Background(), user.ID, validSubmitInput()); !errors.Is(err, ErrDuplicateRequest) {
			t.Errorf("status %s: expected ErrDuplicateRequest, got %v", status, err)
		}
	}
}

func TestSubmitUploadFailureAborts(t *testing.T) {
	svc, userRepo, verificationRepo, uploader, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})
	uploader.err = errors.New("cloud down")

	if _, err := svc.Submit(context.Background(), user.ID, validSubmitInput()); !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}

	if len(verificationRepo.requests) != 0 {
		t.Errorf("expected no request rows after failed upload, got %d", len(verificationRepo.requests))
	}
	if user.VerificationStatus != models.VerificationUnverified {
		t.Errorf("expected user status unchanged, got %s", user.VerificationStatus)
	}
}

func TestSubmitTransactionFailureLeavesNoChange(t *testing.T) {
	svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})
	verificationRepo.failTx = true

	if _, err := svc.Submit(context.Background(), user.ID, validSubmitInput()); err == nil {
		t.Fatal("expected error from aborted transaction")
	}

	if len(verificationRepo.requests) != 0 {
		t.Errorf("expected no request rows after aborted transaction, got %d", len(verificationRepo.requests))
	}
	if user.VerificationStatus != models.VerificationUnverified {
		t.Errorf("expected user status unchanged, got %s", user.VerificationStatus)
	}
}

func TestResubmitAfterRejection(t *testing.T) {
	svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng", VerificationStatus: models.VerificationRejected})
	verificationRepo.requests[1] = &models.VerificationRequest{
		ID:            1,
		UserID:        user.ID,
		Status:        models.VerificationRejected,
		RejectionNote: "ID photo was blurry",
	}
	verificationRepo.nextID = 2

	req, err := svc.Submit(context.Background(), user.ID, validSubmitInput())
	if err != nil {
		t.Fatalf("expected resubmission to succeed, got %v", err)
	}

	if req.ID == 1 {
		t.Error("expected a new request row, not a reused one")
	}
	if old := verificationRepo.requests[1]; old.Status != models.VerificationRejected || old.RejectionNote == "" {
		t.Error("expected the old rejected row to remain untouched")
	}
	if user.VerificationStatus != models.VerificationPending {
		t.Errorf("expected user status PENDING after resubmit, got %s", user.VerificationStatus)
	}
}

func TestDecideApprove(t *testing.T) {
	svc, userRepo, verificationRepo, _, email := newVerificationFixture()
	user := userRepo.addUser(&models.User{Name: "Jane", Email: "jane@unilag.edu.ng", VerificationStatus: models.VerificationPending})
	verificationRepo.requests[1] = &models.VerificationRequest{ID: 1, UserID: user.ID, Status: models.VerificationPending}

	req, err := svc.Decide(context.Background(), 1, DecisionApprove, "")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if req.Status != models.VerificationApproved {
		t.Errorf("expected request APPROVED, got %s", req.Status)
	}
	if user.VerificationStatus != models.VerificationApproved {
		t.Errorf("expected user APPROVED, got %s", user.VerificationStatus)
	}
	if len(email.sent) != 1 || email.sent[0].To != user.Email {
		t.Errorf("expected one decision email to %s, got %+v", user.Email, email.sent)
	}
}

func TestDecideRejectStoresNote(t *testing.T) {
	svc, userRepo, verificationRepo, _, email := newVerificationFixture()
	user := userRepo.addUser(&models.User{Name: "Jane", Email: "jane@unilag.edu.ng", VerificationStatus: models.VerificationPending})
	verificationRepo.requests[1] = &models.VerificationRequest{ID: 1, UserID: user.ID, Status: models.VerificationPending}

	req, err := svc.Decide(context.Background(), 1, DecisionReject, "ID photo was blurry")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if req.Status != models.VerificationRejected {
		t.Errorf("expected request REJECTED, got %s", req.Status)
	}
	if user.VerificationStatus != models.VerificationRejected {
		t.Errorf("expected user REJECTED, got %s", user.VerificationStatus)
	}
	if req.RejectionNote != "ID photo was blurry" {
		t.Errorf("expected rejection note stored, got %q", req.RejectionNote)
	}
	if len(email.sent) != 1 || !strings.Contains(email.sent[0].Body, "ID photo was blurry") {
		t.Error("expected decision email to carry the rejection note")
	}
}

func TestDecideRejectRequiresNote(t *testing.T) {
	svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng", VerificationStatus: models.VerificationPending})
	verificationRepo.requests[1] = &models.VerificationRequest{ID: 1, UserID: user.ID, Status: models.VerificationPending}

	if _, err := svc.Decide(context.Background(), 1, DecisionReject, "   "); !errors.Is(err, ErrMissingRejectionReason) {
		t.Fatalf("expected ErrMissingRejectionReason, got %v", err)
	}

	if user.VerificationStatus != models.VerificationPending {
		t.Errorf("expected user status unchanged, got %s", user.VerificationStatus)
	}
}

func TestDecideUnknownRequest(t *testing.T) {
	svc, _, _, _, _ := newVerificationFixture()

	if _, err := svc.Decide(context.Background(), 99, DecisionApprove, ""); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestDecideInvalidDecision(t *testing.T) {
	svc, _, _, _, _ := newVerificationFixture()

	if _, err := svc.Decide(context.Background(), 1, "MAYBE", ""); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestDecideEmailFailureDoesNotUndoDecision(t *testing.T) {
	svc, userRepo, verificationRepo, _, email := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng", VerificationStatus: models.VerificationPending})
	verificationRepo.requests[1] = &models.VerificationRequest{ID: 1, UserID: user.ID, Status: models.VerificationPending}
	email.err = errors.New("smtp down")

	if _, err := svc.Decide(context.Background(), 1, DecisionApprove, ""); err != nil {
		t.Fatalf("expected success despite email failure, got %v", err)
	}

	if user.VerificationStatus != models.VerificationApproved {
		t.Errorf("expected user APPROVED, got %s", user.VerificationStatus)
	}
}

func TestApproveThenResubmitBlocked(t *testing.T) {
	svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})

	if _, err := svc.Submit(context.Background(), user.ID, validSubmitInput()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var requestID uint
	for id := range verificationRepo.requests {
		requestID = id
	}

	if _, err := svc.Decide(context.Background(), requestID, DecisionApprove, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if user.VerificationStatus != models.VerificationApproved {
		t.Fatalf("expected user APPROVED, got %s", user.VerificationStatus)
	}

	if _, err := svc.Submit(context.Background(), user.ID, validSubmitInput()); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest after approval, got %v", err)
	}
}

func TestStatusSurfacesRejectionNote(t *testing.T) {
	svc, userRepo, verificationRepo, _, _ := newVerificationFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng", VerificationStatus: models.VerificationRejected})
	verificationRepo.requests[1] = &models.VerificationRequest{
		ID:            1,
		UserID:        user.ID,
		Status:        models.VerificationRejected,
		RejectionNote: "ID photo was blurry",
	}

	status, err := svc.Status(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if status.Status != models.VerificationRejected {
		t.Errorf("expected status REJECTED, got %s", status.Status)
	}
	if status.RejectionNote != "ID photo was blurry" {
		t.Errorf("expected rejection note, got %q", status.RejectionNote)
	}
}
