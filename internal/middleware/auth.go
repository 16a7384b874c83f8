package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vijay0896/LoanApp/internal/auth"
)

const (
	LocalUserID = "userID"
	LocalEmail  = "userEmail"
)

// JWTAuth resolves the bearer token into a user identity. Any failure mode
// (missing, malformed, bad signature, expired) comes back as a plain 401.
func JWTAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "missing authorization"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "invalid authorization"})
		}
		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "invalid token"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// UserID returns the identity stored by JWTAuth. Empty outside protected routes.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalUserID).(string); ok {
		return v
	}
	return ""
}
