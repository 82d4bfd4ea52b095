package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/internal/pkg/auth"
	"github.com/FirdavsToshev/NumVault/internal/pkg/env"
)

// Locals keys set by the auth middleware.
const (
	KeyManagerID = "MANAGER_ID"
	KeyUsername  = "MANAGER_USERNAME"
)

// TokenService builds the JWT service from the environment. The default
// secret only exists so dev setups boot; production must set JWT_SECRET.
func TokenService() *auth.JWTService {
	return auth.NewJWTService(env.GetEnv("JWT_SECRET", "numvault_dev_secret"), 24)
}

// RequireManager authenticates requests carrying a manager token in the
// Authorization header or the token cookie, returning JSON 401 otherwise.
func RequireManager() fiber.Handler {
	svc := TokenService()
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Authentication required"})
		}

		claims, err := svc.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid or expired token"})
		}

		c.Locals(KeyManagerID, claims.ManagerID)
		c.Locals(KeyUsername, claims.Username)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(c.Cookies("token"))
}
