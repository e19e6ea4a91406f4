// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"strings"

	"hiredev/internal/token"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by RequireAuth for downstream handlers.
const (
	LocalUserID      = "userID"
	LocalIsClient    = "isClient"
	LocalIsDeveloper = "isDeveloper"
	LocalIsAdmin     = "isAdmin"
)

// RequireAuth enforces a valid bearer access token and stores the caller's
// identity and role flags in locals.
func RequireAuth(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := issuer.Parse(parts[1], token.KindAccess)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		userID, err := claims.UserID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user ID in token",
			})
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalIsClient, claims.IsClient)
		c.Locals(LocalIsDeveloper, claims.IsDeveloper)
		c.Locals(LocalIsAdmin, claims.IsAdmin)

		return c.Next()
	}
}

func localFlag(c *fiber.Ctx, key string) bool {
	v, _ := c.Locals(key).(bool)
	return v
}

// RequireClient allows only callers holding the client role.
func RequireClient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !localFlag(c, LocalIsClient) && !localFlag(c, LocalIsAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Client role required",
			})
		}
		return c.Next()
	}
}

// RequireDeveloper allows only callers holding the developer role.
func RequireDeveloper() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !localFlag(c, LocalIsDeveloper) && !localFlag(c, LocalIsAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Developer role required",
			})
		}
		return c.Next()
	}
}

// RequireDeveloperOrReadOnly permits reads for any authenticated caller and
// writes only for developers.
func RequireDeveloperOrReadOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if !localFlag(c, LocalIsDeveloper) && !localFlag(c, LocalIsAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Developer role required",
			})
		}
		return c.Next()
	}
}
