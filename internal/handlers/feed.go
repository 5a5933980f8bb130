package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"communityhub/internal/config"
	"communityhub/internal/models"
	"communityhub/internal/services"
)

// FeedHandler serves the composed feed endpoints
type FeedHandler struct {
	feedService *services.FeedService
	content     *services.ContentService
	stats       *services.StatsService
	metrics     *services.Metrics
	cfg         *config.Config
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *services.FeedService, content *services.ContentService, stats *services.StatsService, metrics *services.Metrics, cfg *config.Config) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		content:     content,
		stats:       stats,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// clampLimit parses a limit query value, applying the default and upper
// bound; invalid values clamp instead of erroring
func clampLimit(raw string, def, max int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// clampPage parses a page query value, flooring to 1
func clampPage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// GetFeed handles GET /api/feed (auth required): trending first, then
// the caller's interested categories, then everything else
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	if h.metrics != nil {
		h.metrics.FeedRequests.WithLabelValues("authenticated").Inc()
	}

	limit := clampLimit(c.Query("limit"), h.cfg.FeedDefaultLimit, h.cfg.FeedMaxLimit)
	page := clampPage(c.Query("page"))

	interested := h.interestedCategories(c)

	feedPage, err := h.feedService.ComposeFeed(c.Context(), page, limit, interested)
	if err != nil {
		log.Printf("❌ [FEED] Feed composition failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to build feed",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       feedItems(feedPage.Items),
		"pagination": feedPage.Pagination,
	})
}

// GetPublicFeed handles GET /api/feed/public: same composition without
// the interested-category stage
func (h *FeedHandler) GetPublicFeed(c *fiber.Ctx) error {
	if h.metrics != nil {
		h.metrics.FeedRequests.WithLabelValues("public").Inc()
	}

	limit := clampLimit(c.Query("limit"), h.cfg.FeedDefaultLimit, h.cfg.FeedMaxLimit)
	page := clampPage(c.Query("page"))

	feedPage, err := h.feedService.ComposeFeed(c.Context(), page, limit, nil)
	if err != nil {
		log.Printf("❌ [FEED] Public feed composition failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to build feed",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       feedItems(feedPage.Items),
		"pagination": feedPage.Pagination,
	})
}

// GetTrending handles GET /api/feed/trending: positively scored items
// only, no pagination
func (h *FeedHandler) GetTrending(c *fiber.Ctx) error {
	if h.metrics != nil {
		h.metrics.FeedRequests.WithLabelValues("trending").Inc()
	}

	limit := clampLimit(c.Query("limit"), h.cfg.TrendingDefaultLimit, h.cfg.TrendingMaxLimit)

	items, err := h.feedService.TrendingOnly(c.Context(), limit)
	if err != nil {
		log.Printf("❌ [FEED] Trending fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch trending items",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    feedItems(items),
	})
}

// GetCommunityStats handles GET /api/feed/community-stats
func (h *FeedHandler) GetCommunityStats(c *fiber.Ctx) error {
	stats, err := h.stats.Get(c.Context())
	if err != nil {
		log.Printf("❌ [FEED] Community stats failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute community stats",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// interestedCategories loads the caller's interested-topic category ids.
// A missing or dev-mode user simply means no personalization.
func (h *FeedHandler) interestedCategories(c *fiber.Ctx) []primitive.ObjectID {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return nil
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	user, err := h.content.FindUser(c.Context(), oid)
	if err != nil {
		log.Printf("⚠️ [FEED] Failed to load user %s: %v", userID, err)
		return nil
	}
	if user == nil {
		return nil
	}
	return user.InterestedTopic
}

// feedItems guarantees a JSON array (never null) for empty pages
func feedItems(items []models.FeedItem) []models.FeedItem {
	if items == nil {
		return []models.FeedItem{}
	}
	return items
}
