package routes

import (
	"time"

	"github.com/carhubapp/carhub-server/internal/config"
	"github.com/carhubapp/carhub-server/internal/handlers"
	"github.com/carhubapp/carhub-server/internal/middleware"
	"github.com/carhubapp/carhub-server/internal/notifications"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	gate *notifications.MaintenanceGate,
	authHandler *handlers.AuthHandler,
	notificationHandler *handlers.NotificationHandler,
	carHandler *handlers.CarHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Mutating requests are blocked while a maintenance window is active;
	// the guard exempts read-only verbs and the auth endpoints.
	api.Use(middleware.MaintenanceGuard(gate))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP.
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Get("/login_via_google", authHandler.LoginViaGoogle)
	auth.Get("/refresh", authHandler.Refresh)

	// Protected auth routes.
	api.Get("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/get_role", middleware.JWTProtected(cfg), authHandler.GetRole)

	// Maintenance notifications: operator start + push channel.
	notification := api.Group("/notification")
	notification.Post("/start",
		middleware.JWTProtected(cfg),
		middleware.RequirePermission(services.ClaimCanManageUsers),
		notificationHandler.Start)
	notification.Get("/ws", notificationHandler.Upgrade, websocket.New(notificationHandler.Serve))

	// Car catalog — permission per verb.
	cars := api.Group("/cars", middleware.JWTProtected(cfg))
	cars.Get("/", middleware.RequirePermission(services.ClaimCanRead), carHandler.List)
	cars.Get("/properties",
		middleware.RequireAnyPermission(services.ClaimCanCreate, services.ClaimCanUpdate),
		carHandler.Properties)
	cars.Post("/", middleware.RequirePermission(services.ClaimCanCreate), carHandler.Create)
	cars.Put("/:id", middleware.RequirePermission(services.ClaimCanUpdate), carHandler.Update)
	cars.Delete("/:id", middleware.RequirePermission(services.ClaimCanDelete), carHandler.Delete)

	// User management — ManageUsers only.
	users := api.Group("/users",
		middleware.JWTProtected(cfg),
		middleware.RequirePermission(services.ClaimCanManageUsers))
	users.Get("/", userHandler.List)
	users.Get("/roles", userHandler.ListRoles)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
