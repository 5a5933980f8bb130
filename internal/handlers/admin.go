package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"communityhub/internal/models"
	"communityhub/internal/services"
)

const adminTrendingDefaultLimit = 20

// AdminHandler serves the admin-scoped trending inspection endpoint
type AdminHandler struct {
	store   *services.TrendingStore
	content *services.ContentService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store *services.TrendingStore, content *services.ContentService) *AdminHandler {
	return &AdminHandler{store: store, content: content}
}

// GetTrending handles GET /api/admin/trending: raw trending records
// flattened with a whitelisted projection of each document
func (h *AdminHandler) GetTrending(c *fiber.Ctx) error {
	contentType := c.Query("type", "all")
	limit := clampLimit(c.Query("limit"), adminTrendingDefaultLimit, 200)

	var (
		records []models.TrendingScore
		err     error
	)
	if contentType == "all" {
		records, err = h.store.ListTopAll(c.Context(), limit)
	} else {
		ct := models.ContentType(contentType)
		if !ct.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "type must be one of all, blog, question, poll",
			})
		}
		records, err = h.store.ListTopByType(c.Context(), ct, limit)
	}
	if err != nil {
		log.Printf("❌ [ADMIN] Trending listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to list trending records",
		})
	}

	results := make([]models.AdminTrendingEntry, 0, len(records))
	for _, record := range records {
		doc, err := h.content.AdminDoc(c.Context(), record.ContentType, record.ContentID)
		if err != nil {
			log.Printf("❌ [ADMIN] Failed to resolve %s: %v", record.Key(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to resolve trending documents",
			})
		}
		if doc == nil {
			continue
		}
		results = append(results, models.AdminTrendingEntry{
			Type:       record.ContentType,
			ID:         record.ContentID,
			Score:      record.Score,
			ComputedAt: record.ComputedAt,
			Doc:        doc,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    results,
	})
}
