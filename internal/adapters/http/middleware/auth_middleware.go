package middleware

import (
	"strings"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/config"
	"syntra/internal/pkg/jwt"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// extractToken pulls the session token from the cookie or the
// Authorization header
func extractToken(c *fiber.Ctx) string {
	token := c.Cookies("session_token")
	if token == "" {
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	return token
}

// AuthRequired creates authentication middleware for API routes
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from cookie or Authorization header
		token := extractToken(c)

		// 2. No token found
		if token == "" {
			return response.Unauthorized(c, "Session token required")
		}

		// 3. Validate token
		claims, err := jwt.ValidateSessionToken(token, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Session expired")
			}
			return response.Unauthorized(c, "Invalid session token")
		}

		// 4. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals("verificationStatus", claims.VerificationStatus)
		c.Locals("whatsapp", claims.Whatsapp)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// VerifiedOnly middleware allows users whose session claim says the
// identity check passed. Admins pass regardless. The claim is a
// snapshot: a user approved after login stays blocked here until they
// refresh the session or log in again.
func VerifiedOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role == models.RoleAdmin {
			return c.Next()
		}

		status, ok := c.Locals("verificationStatus").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if status != models.VerificationApproved {
			return response.Forbidden(c, "You must verify your identity to access this resource")
		}

		return c.Next()
	}
}

// OptionalAuth middleware - doesn't require auth but sets user info if token present
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)

		// If token exists, validate and set user info
		if token != "" {
			claims, err := jwt.ValidateSessionToken(token, cfg.JWT.Secret)
			if err == nil {
				c.Locals("userID", claims.UserID)
				c.Locals("role", claims.Role)
				c.Locals("verificationStatus", claims.VerificationStatus)
				c.Locals("whatsapp", claims.Whatsapp)
				c.Locals("claims", claims)
			}
		}

		return c.Next()
	}
}
