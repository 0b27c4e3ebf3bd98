package middleware

import (
	"github.com/gofiber/fiber/v2"

	"bidproposal-backend/internal/domain"
)

func RequireRole(required domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(required) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasAnyRole(roles...) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
