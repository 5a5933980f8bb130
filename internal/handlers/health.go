package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"communityhub/internal/database"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db        *database.MongoDB
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.MongoDB) *HealthHandler {
	return &HealthHandler{db: db, startedAt: time.Now()}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	status := "healthy"
	dbStatus := "connected"
	if err := h.db.Ping(c.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"database":  dbStatus,
		"uptime":    time.Since(h.startedAt).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
