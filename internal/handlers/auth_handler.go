package handlers

import (
	"errors"
	"time"

	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/middleware"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/fiber/v2"
)

// refreshCookie is the HTTP-only cookie carrying the opaque refresh token.
const refreshCookie = "Refresh"

type AuthHandler struct {
	authService   *services.AuthService
	googleService *services.GoogleService
}

func NewAuthHandler(authService *services.AuthService, googleService *services.GoogleService) *AuthHandler {
	return &AuthHandler{authService: authService, googleService: googleService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	pair, user, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrCredentialsInvalid) {
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.LoginResponse{
		AccessToken: pair.AccessToken,
		RoleName:    user.Role.Name,
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	pair, user, err := h.authService.Register(c.Context(), req.Login, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrRegistrationInvalid) {
			return respondError(c, fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	setRefreshCookie(c, pair.RefreshToken)
	return c.Status(fiber.StatusCreated).JSON(dto.LoginResponse{
		AccessToken: pair.AccessToken,
		RoleName:    user.Role.Name,
	})
}

// LoginViaGoogle handles GET /api/auth/login_via_google?authCode=...
func (h *AuthHandler) LoginViaGoogle(c *fiber.Ctx) error {
	user, err := h.googleService.ResolveFromCode(c.Context(), c.Query("authCode"))
	if err != nil {
		if errors.Is(err, services.ErrFederationUnverified) {
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	pair, err := h.authService.IssuePair(c.Context(), user)
	if err != nil {
		return err
	}

	setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.LoginResponse{
		AccessToken: pair.AccessToken,
		RoleName:    user.Role.Name,
	})
}

// Refresh handles GET /api/auth/refresh. The Authorization header carries
// the stale access token; it is extracted for symmetry with login but plays
// no part in validation — only the Refresh cookie does.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	_ = c.Get(fiber.HeaderAuthorization)

	oldRefresh := c.Cookies(refreshCookie)
	if oldRefresh == "" {
		c.Set("TOKEN-NOT-EXIST", "true")
		return respondError(c, fiber.StatusBadRequest, "Cookies do not contain a refresh token")
	}

	pair, _, err := h.authService.Rotate(c.Context(), oldRefresh)
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(dto.RefreshResponse{AccessToken: pair.AccessToken})
}

// Logout handles GET /api/auth/logout (requires a valid access token).
// Revocation is idempotent: logging out twice is not an error.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(refreshCookie); token != "" {
		if err := h.authService.Revoke(c.Context(), token); err != nil {
			return err
		}
	}
	clearRefreshCookie(c)
	return c.SendStatus(fiber.StatusOK)
}

// GetRole handles GET /api/auth/get_role (requires a valid access token).
// The role name is looked up live so recent role changes are visible before
// the access token expires.
func (h *AuthHandler) GetRole(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	roleName, err := h.authService.RoleNameBySubject(c.Context(), claims)
	if err != nil {
		if errors.Is(err, services.ErrTokenInvalid) {
			return respondError(c, fiber.StatusUnauthorized, err.Error())
		}
		return err
	}
	return c.SendString(roleName)
}

func setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{StatusCode: status, Message: message})
}
