package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(42, "USER", "APPROVED", "2348000000000", testSecret, 30)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Role != "USER" {
		t.Errorf("expected role USER, got %s", claims.Role)
	}
	if claims.VerificationStatus != "APPROVED" {
		t.Errorf("expected verification status APPROVED, got %s", claims.VerificationStatus)
	}
	if claims.Whatsapp != "2348000000000" {
		t.Errorf("expected whatsapp claim, got %s", claims.Whatsapp)
	}
	if claims.Issuer != "syntra" {
		t.Errorf("expected issuer syntra, got %s", claims.Issuer)
	}
}

func TestExpiredSessionToken(t *testing.T) {
	token, err := GenerateSessionToken(42, "USER", "PENDING", "", testSecret, -1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ValidateSessionToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken(42, "USER", "PENDING", "", testSecret, 30)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ValidateSessionToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestGarbageToken(t *testing.T) {
	if _, err := ValidateSessionToken("not-a-token", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
