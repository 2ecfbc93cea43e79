package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// withClaims injects decoded claims the way the JWT middleware does.
func withClaims(claims jwt.MapClaims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: claims})
		return c.Next()
	}
}

func policyApp(claims jwt.MapClaims, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{}
	if claims != nil {
		handlers = append(handlers, withClaims(claims))
	}
	handlers = append(handlers, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/", handlers...)
	return app
}

func TestRequirePermissionAllows(t *testing.T) {
	app := policyApp(jwt.MapClaims{services.ClaimCanCreate: true}, RequirePermission(services.ClaimCanCreate))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermissionDeniesFalseClaim(t *testing.T) {
	app := policyApp(jwt.MapClaims{services.ClaimCanCreate: false}, RequirePermission(services.ClaimCanCreate))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequirePermissionDeniesMissingClaim(t *testing.T) {
	app := policyApp(jwt.MapClaims{}, RequirePermission(services.ClaimCanDelete))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequirePermissionDeniesWithoutToken(t *testing.T) {
	app := policyApp(nil, RequirePermission(services.ClaimCanRead))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAnyPermission(t *testing.T) {
	claims := jwt.MapClaims{services.ClaimCanUpdate: true}

	app := policyApp(claims, RequireAnyPermission(services.ClaimCanCreate, services.ClaimCanUpdate))
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	app = policyApp(claims, RequireAnyPermission(services.ClaimCanCreate, services.ClaimCanDelete))
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
