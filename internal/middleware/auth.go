package middleware

import (
	"errors"

	"github.com/carhubapp/carhub-server/internal/config"
	"github.com/carhubapp/carhub-server/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected guards a route with bearer-token validation: signature first,
// then the fixed issuer and audience. An expired token is answered with the
// IS-TOKEN-EXPIRED header so clients can refresh silently instead of forcing
// a re-login.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			claims := ClaimsFromContext(c)
			iss, _ := claims["iss"].(string)
			aud, _ := claims["aud"].(string)
			if iss != cfg.JWTIssuer || aud != cfg.JWTAudience {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					StatusCode: fiber.StatusUnauthorized,
					Message:    "Unauthorized: invalid token",
				})
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusUnauthorized
			message := "Unauthorized: invalid token"

			switch {
			case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
				message = "Unauthorized: missing access token"
			case errors.Is(err, jwt.ErrTokenExpired):
				c.Set("IS-TOKEN-EXPIRED", "true")
				message = "Unauthorized: access token expired"
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				message = "Unauthorized: invalid token signature"
			}

			return c.Status(status).JSON(dto.ErrorResponse{
				StatusCode: status,
				Message:    message,
			})
		},
	})
}
