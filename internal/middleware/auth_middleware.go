package middleware

import (
	"strings"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates the JWT token, loads the user from
// the database, and sets it in context for downstream handlers.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		// Validate token
		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Load the live user record; permissions may have changed since the
		// token was minted, so authorization always reads current state.
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		// Set user info in context for downstream handlers
		c.Locals("user", user)
		c.Locals("user_id", user.ID.String())

		return c.Next()
	}
}

// RequirePermission checks the authenticated user's access to a functional
// area. Admin-class users pass every check.
func RequirePermission(area, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*model.User)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No user in context"})
		}

		if !user.Can(area, action) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + action + "' access to " + area,
			})
		}

		return c.Next()
	}
}

// CurrentUser extracts the user set by RequireAuth. Handlers call this after
// the middleware has run, so a missing user is a programming error.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}
