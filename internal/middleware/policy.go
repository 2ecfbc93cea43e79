package middleware

import (
	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsFromContext returns the decoded claims set by JWTProtected, or nil.
func ClaimsFromContext(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// RequirePermission checks a single boolean permission claim. A missing or
// false claim denies the request.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if services.HasPermission(ClaimsFromContext(c), name) {
			return c.Next()
		}
		return forbidden(c)
	}
}

// RequireAnyPermission allows the request if at least one of the named
// permission claims is true.
func RequireAnyPermission(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromContext(c)
		for _, name := range names {
			if services.HasPermission(claims, name) {
				return c.Next()
			}
		}
		return forbidden(c)
	}
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		StatusCode: fiber.StatusForbidden,
		Message:    "Forbidden: insufficient permissions",
	})
}
