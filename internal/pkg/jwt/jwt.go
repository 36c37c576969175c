package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// SessionClaims represents the session token claims. The claims are a
// point-in-time snapshot of the user row: role and verification status
// are only as fresh as the last mint or explicit refresh.
type SessionClaims struct {
	UserID             uint   `json:"user_id"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	Whatsapp           string `json:"whatsapp,omitempty"`
	jwt.RegisteredClaims
}

// GenerateSessionToken generates a new session token
func GenerateSessionToken(userID uint, role, verificationStatus, whatsapp, secret string, expiryDays int) (string, error) {
	claims := SessionClaims{
		UserID:             userID,
		Role:               role,
		VerificationStatus: verificationStatus,
		Whatsapp:           whatsapp,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "syntra",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken validates a session token and returns claims
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
