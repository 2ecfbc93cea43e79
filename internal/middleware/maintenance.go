package middleware

import (
	"strings"

	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/notifications"
	"github.com/gofiber/fiber/v2"
)

// MaintenanceGuard rejects mutating requests with 503 while a maintenance
// window is active. Read-only verbs and the auth endpoints pass through so
// users can still sign in and refresh.
func MaintenanceGuard(gate *notifications.MaintenanceGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		if strings.HasPrefix(c.Path(), "/api/auth") {
			return c.Next()
		}

		if gate.Active() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				StatusCode: fiber.StatusServiceUnavailable,
				Message:    "Maintenance in progress",
			})
		}
		return c.Next()
	}
}
