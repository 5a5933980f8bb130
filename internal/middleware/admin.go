package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware checks that the authenticated user carries the admin
// role. Must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Authentication required",
			})
		}

		if role, ok := c.Locals("user_role").(string); !ok || role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Admin access required",
			})
		}

		return c.Next()
	}
}
