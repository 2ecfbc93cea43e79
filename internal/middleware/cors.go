package middleware

import (
	"github.com/carhubapp/carhub-server/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		// Credentials are required for the Refresh cookie, but a wildcard
		// origin may not be combined with them.
		AllowCredentials: cfg.CORSOrigins != "*",
	})
}
