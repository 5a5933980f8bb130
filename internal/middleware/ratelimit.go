package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// PublicReadLimiter rate-limits the unauthenticated read endpoints per
// IP. Feed composition fans out into several collection scans, so the
// public surface gets a tighter budget than the global default.
func PublicReadLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please slow down",
			})
		},
	})
}

// AuthenticatedLimiter rate-limits authenticated endpoints per user
func AuthenticatedLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        240,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
				return userID
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests, please slow down",
			})
		},
	})
}
