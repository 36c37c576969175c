package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/pkg/jwt"
	"syntra/internal/pkg/password"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeOtpRepo, *fakeEmailSender) {
	userRepo := newFakeUserRepo()
	otpRepo := &fakeOtpRepo{}
	email := &fakeEmailSender{}
	svc := NewAuthService(userRepo, otpRepo, email, testConfig())
	return svc, userRepo, otpRepo, email
}

func TestRegisterSendsOTP(t *testing.T) {
	svc, userRepo, _, email := newAuthFixture()

	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@unilag.edu.ng",
		Password: "supersecret1",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	user, err := userRepo.GetByEmail(context.Background(), "jane@unilag.edu.ng")
	if err != nil {
		t.Fatalf("expected user created, got %v", err)
	}
	if user.VerificationStatus != models.VerificationUnverified {
		t.Errorf("expected new user UNVERIFIED, got %s", user.VerificationStatus)
	}
	if user.HashedPassword == "supersecret1" || user.HashedPassword == "" {
		t.Error("expected password to be hashed")
	}
	if len(email.sent) != 1 || email.sent[0].To != "jane@unilag.edu.ng" {
		t.Errorf("expected one OTP email, got %+v", email.sent)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})

	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@unilag.edu.ng",
		Password: "supersecret1",
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegisterTransactionFailureLeavesNoUser(t *testing.T) {
	svc, userRepo, _, email := newAuthFixture()
	userRepo.failTx = true

	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@unilag.edu.ng",
		Password: "supersecret1",
	})
	if err == nil {
		t.Fatal("expected error from aborted transaction")
	}

	if len(userRepo.users) != 0 {
		t.Errorf("expected no user rows after aborted transaction, got %d", len(userRepo.users))
	}
	if len(email.sent) != 0 {
		t.Errorf("expected no OTP email after aborted transaction, got %d", len(email.sent))
	}
}

func TestRegisterEmailFailure(t *testing.T) {
	svc, _, _, email := newAuthFixture()
	email.err = errors.New("smtp down")

	err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@unilag.edu.ng",
		Password: "supersecret1",
	})
	if !errors.Is(err, ErrEmailSendFailed) {
		t.Fatalf("expected ErrEmailSendFailed, got %v", err)
	}
}

func TestVerifyOTP(t *testing.T) {
	svc, userRepo, otpRepo, _ := newAuthFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})
	otpRepo.codes = append(otpRepo.codes, &models.OtpCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})

	if err := svc.VerifyOTP(context.Background(), user.Email, "999999"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for wrong code, got %v", err)
	}

	if err := svc.VerifyOTP(context.Background(), user.Email, "123456"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if user.EmailVerifiedAt == nil {
		t.Error("expected EmailVerifiedAt to be set")
	}

	// Spent code is gone
	if err := svc.VerifyOTP(context.Background(), user.Email, "123456"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP after code was spent, got %v", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, userRepo, otpRepo, _ := newAuthFixture()
	user := userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})
	otpRepo.codes = append(otpRepo.codes, &models.OtpCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	})

	if err := svc.VerifyOTP(context.Background(), user.Email, "123456"); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP for expired code, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Login(context.Background(), "nobody@unilag.edu.ng", "whatever"); !errors.Is(err, ErrNoSuchUser) {
		t.Fatalf("expected ErrNoSuchUser, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	hash, _ := password.Hash("rightpassword")
	userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng", HashedPassword: hash})

	if _, err := svc.Login(context.Background(), "jane@unilag.edu.ng", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginOAuthOnlyAccount(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	userRepo.addUser(&models.User{Email: "jane@unilag.edu.ng"})

	if _, err := svc.Login(context.Background(), "jane@unilag.edu.ng", "whatever"); !errors.Is(err, ErrNoSuchUser) {
		t.Fatalf("expected ErrNoSuchUser for passwordless account, got %v", err)
	}
}

func TestLoginMintsSessionSnapshot(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()
	hash, _ := password.Hash("rightpassword")
	userRepo.addUser(&models.User{
		Email:              "jane@unilag.edu.ng",
		HashedPassword:     hash,
		Role:               models.RoleUser,
		VerificationStatus: models.VerificationApproved,
		Whatsapp:           "2348000000000",
	})

	result, err := svc.Login(context.Background(), "jane@unilag.edu.ng", "rightpassword")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	claims, err := jwt.ValidateSessionToken(result.SessionToken, "test-secret")
	if err != nil {
		t.Fatalf("expected valid session token, got %v", err)
	}
	if claims.VerificationStatus != models.VerificationApproved {
		t.Errorf("expected APPROVED claim, got %s", claims.VerificationStatus)
	}
	if claims.Whatsapp != "2348000000000" {
		t.Errorf("expected whatsapp claim, got %s", claims.Whatsapp)
	}
}

func TestLoginWithGoogleCreatesUser(t *testing.T) {
	svc, userRepo, _, _ := newAuthFixture()

	result, err := svc.LoginWithGoogle(context.Background(), &GoogleUserInfo{
		Email:   "jane@gmail.com",
		Name:    "Jane Doe",
		Picture: "https://lh3.example.com/p.jpg",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	user, err := userRepo.GetByEmail(context.Background(), "jane@gmail.com")
	if err != nil {
		t.Fatalf("expected user created, got %v", err)
	}
	if user.EmailVerifiedAt == nil {
		t.Error("expected Google account to be email-verified")
	}
	if result.SessionToken == "" {
		t.Error("expected a session token")
	}

	// Second sign-in reuses the account
	if _, err := svc.LoginWithGoogle(context.Background(), &GoogleUserInfo{Email: "jane@gmail.com", Name: "Jane Doe"}); err != nil {
		t.Fatalf("expected second sign-in to succeed, got %v", err)
	}
	if len(userRepo.users) != 1 {
		t.Errorf("expected one user, got %d", len(userRepo.users))
	}
}

func TestRefreshSessionTrustsCallerPayload(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	// The caller claims they are now APPROVED; refresh does not re-read
	// the store, it takes the payload at face value.
	old := &jwt.SessionClaims{
		UserID:             7,
		Role:               models.RoleUser,
		VerificationStatus: models.VerificationPending,
		Whatsapp:           "2348000000000",
	}

	token, err := svc.RefreshSession(old, &RefreshSessionInput{
		VerificationStatus: models.VerificationApproved,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	claims, err := jwt.ValidateSessionToken(token, "test-secret")
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.VerificationStatus != models.VerificationApproved {
		t.Errorf("expected APPROVED claim after refresh, got %s", claims.VerificationStatus)
	}
	if claims.UserID != 7 || claims.Whatsapp != "2348000000000" {
		t.Error("expected untouched claim fields to carry over")
	}
}

func TestRefreshSessionKeepsOldFieldsWhenEmpty(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	old := &jwt.SessionClaims{
		UserID:             7,
		Role:               models.RoleUser,
		VerificationStatus: models.VerificationPending,
	}

	token, err := svc.RefreshSession(old, &RefreshSessionInput{})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	claims, err := jwt.ValidateSessionToken(token, "test-secret")
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.VerificationStatus != models.VerificationPending {
		t.Errorf("expected PENDING carried over, got %s", claims.VerificationStatus)
	}
}
