package handlers

import (
	"errors"
	"strings"
	"time"

	"syntra/internal/config"
	"syntra/internal/core/services"
	"syntra/internal/pkg/jwt"
	"syntra/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService   *services.AuthService
	googleService *services.GoogleService
	cfg           *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, googleService *services.GoogleService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		googleService: googleService,
		cfg:           cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest represents email verification request body
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshSessionRequest represents session refresh request body
type RefreshSessionRequest struct {
	VerificationStatus string `json:"verification_status"`
	Whatsapp           string `json:"whatsapp"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user and send an email verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	// Register user
	input := &services.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}

	if err := h.authService.Register(c.Context(), input); err != nil {
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			return response.Conflict(c, "An account with this email already exists")
		case errors.Is(err, services.ErrEmailSendFailed):
			return response.InternalServerError(c, "Could not send verification email, please try again")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "Registration successful, check your email for the verification code", nil)
}

// VerifyOTP handles email verification
// @Summary Verify email with OTP
// @Description Confirm the OTP code sent at registration
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "Email and OTP code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.OTP == "" {
		return response.BadRequest(c, "Email and OTP are required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.authService.VerifyOTP(c.Context(), email, strings.TrimSpace(req.OTP)); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			return response.BadRequest(c, "Invalid or expired code")
		default:
			return response.InternalServerError(c, "Failed to verify email")
		}
	}

	return response.Success(c, "Email verified successfully", nil)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and mint a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.Login(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSuchUser):
			return response.Unauthorized(c, "No account found with this email")
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	// Set session cookie
	h.setSessionCookie(c, result.SessionToken)

	return response.Success(c, "Login successful", fiber.Map{
		"session_token": result.SessionToken,
		"user":          result.User,
	})
}

// GoogleLogin redirects to Google's consent screen
// @Summary Start Google sign-in
// @Description Redirect to the Google OAuth consent screen
// @Tags Auth
// @Produce json
// @Success 302
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.New().String()

	// State cookie closes the redirect loop against CSRF
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(h.googleService.GetLoginURL(state), fiber.StatusFound)
}

// GoogleCallback handles the Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchange the authorization code and mint a session
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		return response.BadRequest(c, "Authorization code is required")
	}
	if state == "" || state != c.Cookies("oauth_state") {
		return response.Unauthorized(c, "Invalid OAuth state")
	}

	tokenResp, err := h.googleService.ExchangeToken(c.Context(), code)
	if err != nil {
		return response.Unauthorized(c, "Failed to exchange authorization code")
	}

	info, err := h.googleService.GetUserInfo(c.Context(), tokenResp.AccessToken)
	if err != nil {
		return response.Unauthorized(c, "Failed to fetch Google profile")
	}

	result, err := h.authService.LoginWithGoogle(c.Context(), info)
	if err != nil {
		return response.InternalServerError(c, "Failed to login with Google")
	}

	h.setSessionCookie(c, result.SessionToken)

	return response.Success(c, "Login successful", fiber.Map{
		"session_token": result.SessionToken,
		"user":          result.User,
	})
}

// RefreshSession re-mints the session token with updated claim fields
// @Summary Refresh session claims
// @Description Re-mint the session token after a verification round-trip
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RefreshSessionRequest true "Claim overrides"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/session/refresh [post]
func (h *AuthHandler) RefreshSession(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*jwt.SessionClaims)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RefreshSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.authService.RefreshSession(claims, &services.RefreshSessionInput{
		VerificationStatus: strings.TrimSpace(req.VerificationStatus),
		Whatsapp:           strings.TrimSpace(req.Whatsapp),
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to refresh session")
	}

	h.setSessionCookie(c, token)

	return response.Success(c, "Session refreshed successfully", fiber.Map{
		"session_token": token,
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	// Get user ID from context (set by auth middleware)
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	// Get user
	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// setSessionCookie sets the session token cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		MaxAge:   h.cfg.JWT.SessionDays * 24 * 60 * 60, // Convert days to seconds
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
