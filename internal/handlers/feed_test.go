package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"communityhub/internal/config"
	"communityhub/internal/models"
	"communityhub/internal/services"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		def      int
		max      int
		expected int
	}{
		{"empty uses default", "", 30, 100, 30},
		{"garbage uses default", "abc", 30, 100, 30},
		{"zero uses default", "0", 30, 100, 30},
		{"negative uses default", "-5", 30, 100, 30},
		{"valid value passes through", "42", 30, 100, 42},
		{"above max clamps", "500", 30, 100, 100},
		{"trending bounds", "999", 50, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampLimit(tt.raw, tt.def, tt.max); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"7", 7},
	}

	for _, tt := range tests {
		if got := clampPage(tt.raw); got != tt.expected {
			t.Errorf("clampPage(%q): expected %d, got %d", tt.raw, tt.expected, got)
		}
	}
}

type stubTrending struct {
	lastLimit int
}

func (s *stubTrending) ListTopAll(_ context.Context, limit int) ([]models.TrendingScore, error) {
	s.lastLimit = limit
	return nil, nil
}

func (s *stubTrending) ListPositive(_ context.Context, limit int) ([]models.TrendingScore, error) {
	s.lastLimit = limit
	return nil, nil
}

type stubContent struct {
	items []models.FeedItem
}

func (s *stubContent) Resolve(_ context.Context, _ models.ContentType, _ primitive.ObjectID) (*models.FeedItem, error) {
	return nil, nil
}

func (s *stubContent) ListNewest(_ context.Context, contentType models.ContentType, _ services.ContentQuery) ([]models.FeedItem, error) {
	var out []models.FeedItem
	for _, item := range s.items {
		if item.Type == contentType {
			out = append(out, item)
		}
	}
	return out, nil
}

func newTestApp(trending *stubTrending, content *stubContent) *fiber.App {
	cfg := config.Load()
	feedService := services.NewFeedService(trending, content, cfg.FeedCandidateCap, nil)
	handler := NewFeedHandler(feedService, nil, nil, nil, cfg)

	app := fiber.New()
	app.Get("/api/feed/public", handler.GetPublicFeed)
	app.Get("/api/feed/trending", handler.GetTrending)
	return app
}

func TestGetPublicFeedResponseShape(t *testing.T) {
	content := &stubContent{items: []models.FeedItem{
		{Type: models.ContentTypeBlog, CreatedAt: time.Now().UnixMilli(), ID: primitive.NewObjectID(), Doc: "b"},
		{Type: models.ContentTypeQuestion, CreatedAt: time.Now().UnixMilli(), ID: primitive.NewObjectID(), Doc: "q"},
	}}
	app := newTestApp(&stubTrending{}, content)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/feed/public", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var parsed struct {
		Success    bool              `json:"success"`
		Data       []models.FeedItem `json:"data"`
		Pagination struct {
			Page    int  `json:"page"`
			Limit   int  `json:"limit"`
			HasMore bool `json:"hasMore"`
			Total   int  `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}

	if !parsed.Success {
		t.Error("Expected success=true")
	}
	if len(parsed.Data) != 2 {
		t.Errorf("Expected 2 items, got %d", len(parsed.Data))
	}
	if parsed.Pagination.Page != 1 || parsed.Pagination.Limit != 30 {
		t.Errorf("Expected default pagination page=1 limit=30, got %+v", parsed.Pagination)
	}
	if parsed.Pagination.HasMore {
		t.Error("Expected hasMore=false for a feed smaller than one page")
	}
}

func TestGetPublicFeedEmptyDataIsArray(t *testing.T) {
	app := newTestApp(&stubTrending{}, &stubContent{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/feed/public?page=99", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if string(parsed["data"]) != "[]" {
		t.Errorf("Expected empty array for data, got %s", parsed["data"])
	}
}

func TestGetTrendingClampsLimit(t *testing.T) {
	trending := &stubTrending{}
	app := newTestApp(trending, &stubContent{})

	if _, err := app.Test(httptest.NewRequest("GET", "/api/feed/trending?limit=9999", nil)); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if trending.lastLimit != 200 {
		t.Errorf("Expected limit clamped to 200, got %d", trending.lastLimit)
	}

	if _, err := app.Test(httptest.NewRequest("GET", "/api/feed/trending", nil)); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if trending.lastLimit != 50 {
		t.Errorf("Expected default limit 50, got %d", trending.lastLimit)
	}
}
