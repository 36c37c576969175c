package middleware

import (
	"net/url"
	"strings"

	"syntra/internal/adapters/persistence/models"
	"syntra/internal/config"
	"syntra/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Page path classes. Prefix match, most specific rule wins.
var (
	// Open to everyone, signed in or not
	publicPaths = []string{
		"/",
		"/register",
		"/verify-email",
		"/signin",
		"/marketplace",
		"/explore",
	}

	// Sign-in family: signed-in users get bounced away
	authPages = []string{
		"/signin",
	}

	// Require an APPROVED verification claim on top of authentication
	restrictedPaths = []string{
		"/admin",
		"/founders/create",
		"/marketplace/create",
		"/agent/upload",
	}
)

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// AccessGate classifies every page request as public, auth-page,
// private or restricted and enforces the session claim accordingly.
// API routes carry their own middleware chain and answer in JSON, so
// the gate skips them; it speaks in redirects.
//
// If a token is present but cannot be decoded, the gate lets the
// request through instead of locking the caller out. A transient
// signing-key or clock problem should not take every page down; the
// handlers behind the gate still do their own checks.
func AccessGate(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// API and tooling routes are not page routes
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/swagger") || path == "/health" {
			return c.Next()
		}

		token := extractToken(c)

		var claims *jwt.SessionClaims
		if token != "" {
			var err error
			claims, err = jwt.ValidateSessionToken(token, cfg.JWT.Secret)
			if err != nil {
				// Fail open on a malformed or expired token
				return c.Next()
			}
		}

		// 1. Sign-in pages: already signed in, nothing to do here
		if matchesPrefix(path, authPages) {
			if claims != nil {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
			return c.Next()
		}

		// 2. Anonymous callers: public pages pass, everything else
		// goes to sign-in and comes back where it started
		if claims == nil {
			if matchesPrefix(path, publicPaths) {
				return c.Next()
			}
			return c.Redirect("/signin?callbackUrl="+url.QueryEscape(path), fiber.StatusFound)
		}

		// 3. Restricted areas need an APPROVED claim even when they sit
		// under a public browse prefix (/marketplace/create); the admin
		// area additionally needs the ADMIN role
		if matchesPrefix(path, restrictedPaths) {
			if strings.HasPrefix(path, "/admin") && claims.Role != models.RoleAdmin {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
			if claims.Role != models.RoleAdmin && claims.VerificationStatus != models.VerificationApproved {
				return c.Redirect("/verify", fiber.StatusFound)
			}
		}

		return c.Next()
	}
}
