package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"syntra/internal/adapters/persistence/models"

	"github.com/gofiber/fiber/v2"
)

// buildAPIApp wires AuthRequired plus a guard in front of a JSON handler
func buildAPIApp(guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/api/v1/thing", AuthRequired(gateTestConfig()), guard, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func apiRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	app := buildAPIApp(func(c *fiber.Ctx) error { return c.Next() })

	resp := apiRequest(t, app, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestAuthRequiredRejectsBadToken(t *testing.T) {
	app := buildAPIApp(func(c *fiber.Ctx) error { return c.Next() })

	resp := apiRequest(t, app, "garbage")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", resp.StatusCode)
	}
}

func TestAdminOnlyForbidsUserRole(t *testing.T) {
	app := buildAPIApp(AdminOnly())

	resp := apiRequest(t, app, signGateToken(t, models.RoleUser, models.VerificationApproved))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d", resp.StatusCode)
	}

	resp = apiRequest(t, app, signGateToken(t, models.RoleAdmin, models.VerificationApproved))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for ADMIN role, got %d", resp.StatusCode)
	}
}

func TestVerifiedOnlyForbidsUnapprovedClaim(t *testing.T) {
	app := buildAPIApp(VerifiedOnly())

	for _, status := range []string{models.VerificationUnverified, models.VerificationPending, models.VerificationRejected} {
		resp := apiRequest(t, app, signGateToken(t, models.RoleUser, status))
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("status %s: expected 403, got %d", status, resp.StatusCode)
		}
	}

	resp := apiRequest(t, app, signGateToken(t, models.RoleUser, models.VerificationApproved))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for APPROVED claim, got %d", resp.StatusCode)
	}

	// Admins pass without an APPROVED claim
	resp = apiRequest(t, app, signGateToken(t, models.RoleAdmin, models.VerificationUnverified))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for ADMIN, got %d", resp.StatusCode)
	}
}

// The claim is a snapshot: approval after mint does not change what
// the middleware sees until the caller refreshes the session.
func TestVerifiedOnlyEnforcesStaleClaim(t *testing.T) {
	app := buildAPIApp(VerifiedOnly())

	// Token minted while PENDING keeps blocking even though the store
	// may already say APPROVED.
	stale := signGateToken(t, models.RoleUser, models.VerificationPending)
	resp := apiRequest(t, app, stale)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for stale PENDING claim, got %d", resp.StatusCode)
	}

	// A refreshed token carries the new status and passes.
	fresh := signGateToken(t, models.RoleUser, models.VerificationApproved)
	resp = apiRequest(t, app, fresh)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after refresh, got %d", resp.StatusCode)
	}
}
