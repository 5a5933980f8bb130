package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"communityhub/internal/models"
)

type fakeTrending struct {
	records []models.TrendingScore
}

func (f *fakeTrending) ListTopAll(_ context.Context, limit int) ([]models.TrendingScore, error) {
	if limit > 0 && len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeTrending) ListPositive(_ context.Context, limit int) ([]models.TrendingScore, error) {
	var positive []models.TrendingScore
	for _, r := range f.records {
		if r.Score > 0 {
			positive = append(positive, r)
		}
	}
	if limit > 0 && len(positive) > limit {
		positive = positive[:limit]
	}
	return positive, nil
}

type fakeDoc struct {
	contentType models.ContentType
	id          primitive.ObjectID
	createdAt   time.Time
	category    primitive.ObjectID
	deleted     bool
}

type fakeContent struct {
	docs []fakeDoc
}

func (f *fakeContent) item(d fakeDoc) models.FeedItem {
	return models.FeedItem{
		Type:      d.contentType,
		CreatedAt: d.createdAt.UnixMilli(),
		Doc:       d.id.Hex(),
		ID:        d.id,
	}
}

func (f *fakeContent) Resolve(_ context.Context, contentType models.ContentType, id primitive.ObjectID) (*models.FeedItem, error) {
	for _, d := range f.docs {
		if d.contentType == contentType && d.id == id && !d.deleted {
			item := f.item(d)
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeContent) ListNewest(_ context.Context, contentType models.ContentType, query ContentQuery) ([]models.FeedItem, error) {
	excluded := make(map[primitive.ObjectID]bool)
	for _, id := range query.ExcludeIDs {
		excluded[id] = true
	}
	wanted := make(map[primitive.ObjectID]bool)
	for _, id := range query.Categories {
		wanted[id] = true
	}

	var items []models.FeedItem
	for _, d := range f.docs {
		if d.contentType != contentType || d.deleted || excluded[d.id] {
			continue
		}
		if len(wanted) > 0 && !wanted[d.category] {
			continue
		}
		items = append(items, f.item(d))
	}
	// newest first, like the real query
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[j].CreatedAt > items[i].CreatedAt {
				items[i], items[j] = items[j], items[i]
			}
		}
	}
	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	return items, nil
}

func newTestService(trending *fakeTrending, content *fakeContent) *FeedService {
	return NewFeedService(trending, content, 1000, nil)
}

func TestComposeFeedTrendingLeads(t *testing.T) {
	now := time.Now()
	trendingBlog := fakeDoc{contentType: models.ContentTypeBlog, id: primitive.NewObjectID(), createdAt: now.Add(-48 * time.Hour)}
	freshQuestion := fakeDoc{contentType: models.ContentTypeQuestion, id: primitive.NewObjectID(), createdAt: now}

	content := &fakeContent{docs: []fakeDoc{trendingBlog, freshQuestion}}
	trending := &fakeTrending{records: []models.TrendingScore{
		{ContentType: models.ContentTypeBlog, ContentID: trendingBlog.id, Score: 12},
	}}

	page, err := newTestService(trending, content).ComposeFeed(context.Background(), 1, 30, nil)
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(page.Items))
	}
	// The two-day-old trending blog must precede the brand-new question
	if page.Items[0].ID != trendingBlog.id {
		t.Errorf("Expected trending item first, got %v", page.Items[0].ID)
	}
	if page.Items[1].ID != freshQuestion.id {
		t.Errorf("Expected non-trending item second, got %v", page.Items[1].ID)
	}
}

func TestComposeFeedNeverDuplicates(t *testing.T) {
	now := time.Now()
	category := primitive.NewObjectID()

	var docs []fakeDoc
	for i := 0; i < 10; i++ {
		docs = append(docs, fakeDoc{
			contentType: models.ContentTypeBlog,
			id:          primitive.NewObjectID(),
			createdAt:   now.Add(-time.Duration(i) * time.Hour),
			category:    category,
		})
	}
	content := &fakeContent{docs: docs}

	// First three blogs are also trending
	trending := &fakeTrending{records: []models.TrendingScore{
		{ContentType: models.ContentTypeBlog, ContentID: docs[0].id, Score: 9},
		{ContentType: models.ContentTypeBlog, ContentID: docs[1].id, Score: 8},
		{ContentType: models.ContentTypeBlog, ContentID: docs[2].id, Score: 7},
	}}

	page, err := newTestService(trending, content).ComposeFeed(context.Background(), 1, 30, []primitive.ObjectID{category})
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, item := range page.Items {
		key := item.Key()
		if seen[key] {
			t.Errorf("Duplicate item in feed: %s", key)
		}
		seen[key] = true
	}
	if len(page.Items) != 10 {
		t.Errorf("Expected all 10 items exactly once, got %d", len(page.Items))
	}
}

func TestComposeFeedInterestedBetweenTrendingAndOther(t *testing.T) {
	now := time.Now()
	interestedCat := primitive.NewObjectID()
	otherCat := primitive.NewObjectID()

	trendingDoc := fakeDoc{contentType: models.ContentTypePoll, id: primitive.NewObjectID(), createdAt: now.Add(-72 * time.Hour), category: otherCat}
	interestedDoc := fakeDoc{contentType: models.ContentTypeBlog, id: primitive.NewObjectID(), createdAt: now.Add(-24 * time.Hour), category: interestedCat}
	otherDoc := fakeDoc{contentType: models.ContentTypeQuestion, id: primitive.NewObjectID(), createdAt: now, category: otherCat}

	content := &fakeContent{docs: []fakeDoc{trendingDoc, interestedDoc, otherDoc}}
	trending := &fakeTrending{records: []models.TrendingScore{
		{ContentType: models.ContentTypePoll, ContentID: trendingDoc.id, Score: 5},
	}}

	page, err := newTestService(trending, content).ComposeFeed(context.Background(), 1, 30, []primitive.ObjectID{interestedCat})
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}

	if len(page.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(page.Items))
	}
	if page.Items[0].ID != trendingDoc.id {
		t.Errorf("Expected trending poll first")
	}
	// The day-old interested blog outranks the brand-new other question
	if page.Items[1].ID != interestedDoc.id {
		t.Errorf("Expected interested blog second")
	}
	if page.Items[2].ID != otherDoc.id {
		t.Errorf("Expected other question last")
	}
}

func TestComposeFeedPublicSortsByRecency(t *testing.T) {
	now := time.Now()
	var docs []fakeDoc
	types := []models.ContentType{models.ContentTypeBlog, models.ContentTypeQuestion, models.ContentTypePoll}
	for i := 0; i < 6; i++ {
		docs = append(docs, fakeDoc{
			contentType: types[i%3],
			id:          primitive.NewObjectID(),
			createdAt:   now.Add(-time.Duration(i) * time.Minute),
		})
	}
	content := &fakeContent{docs: docs}

	page, err := newTestService(&fakeTrending{}, content).ComposeFeed(context.Background(), 1, 30, nil)
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}

	if len(page.Items) != 6 {
		t.Fatalf("Expected 6 items, got %d", len(page.Items))
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].CreatedAt > page.Items[i-1].CreatedAt {
			t.Errorf("Items out of recency order at index %d", i)
		}
	}
}

func TestComposeFeedPagination(t *testing.T) {
	now := time.Now()
	var docs []fakeDoc
	for i := 0; i < 25; i++ {
		docs = append(docs, fakeDoc{
			contentType: models.ContentTypeBlog,
			id:          primitive.NewObjectID(),
			createdAt:   now.Add(-time.Duration(i) * time.Minute),
		})
	}
	service := newTestService(&fakeTrending{}, &fakeContent{docs: docs})

	page1, err := service.ComposeFeed(context.Background(), 1, 10, nil)
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}
	if len(page1.Items) != 10 || !page1.Pagination.HasMore {
		t.Errorf("Expected full first page with hasMore, got %d items hasMore=%v", len(page1.Items), page1.Pagination.HasMore)
	}
	if page1.Pagination.Total != 25 {
		t.Errorf("Expected total 25, got %d", page1.Pagination.Total)
	}

	page3, err := service.ComposeFeed(context.Background(), 3, 10, nil)
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}
	if len(page3.Items) != 5 || page3.Pagination.HasMore {
		t.Errorf("Expected 5 items and no more on page 3, got %d hasMore=%v", len(page3.Items), page3.Pagination.HasMore)
	}

	beyond, err := service.ComposeFeed(context.Background(), 10, 10, nil)
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}
	if len(beyond.Items) != 0 || beyond.Pagination.HasMore {
		t.Errorf("Expected empty page beyond end with hasMore=false, got %d hasMore=%v", len(beyond.Items), beyond.Pagination.HasMore)
	}
}

func TestComposeFeedSkipsDeletedTrendingDoc(t *testing.T) {
	now := time.Now()
	deleted := fakeDoc{contentType: models.ContentTypeBlog, id: primitive.NewObjectID(), createdAt: now, deleted: true}
	alive := fakeDoc{contentType: models.ContentTypeQuestion, id: primitive.NewObjectID(), createdAt: now}

	content := &fakeContent{docs: []fakeDoc{deleted, alive}}
	trending := &fakeTrending{records: []models.TrendingScore{
		{ContentType: models.ContentTypeBlog, ContentID: deleted.id, Score: 10},
		{ContentType: models.ContentTypeQuestion, ContentID: alive.id, Score: 4},
	}}

	page, err := newTestService(trending, content).ComposeFeed(context.Background(), 1, 30, nil)
	if err != nil {
		t.Fatalf("ComposeFeed failed: %v", err)
	}

	if len(page.Items) != 1 {
		t.Fatalf("Expected only the surviving item, got %d", len(page.Items))
	}
	if page.Items[0].ID != alive.id {
		t.Errorf("Expected surviving question, got %v", page.Items[0].ID)
	}
}

func TestTrendingOnly(t *testing.T) {
	now := time.Now()
	high := fakeDoc{contentType: models.ContentTypeBlog, id: primitive.NewObjectID(), createdAt: now}
	low := fakeDoc{contentType: models.ContentTypePoll, id: primitive.NewObjectID(), createdAt: now}
	gone := fakeDoc{contentType: models.ContentTypeQuestion, id: primitive.NewObjectID(), createdAt: now, deleted: true}

	content := &fakeContent{docs: []fakeDoc{high, low, gone}}
	trending := &fakeTrending{records: []models.TrendingScore{
		{ContentType: models.ContentTypeBlog, ContentID: high.id, Score: 20},
		{ContentType: models.ContentTypeQuestion, ContentID: gone.id, Score: 10},
		{ContentType: models.ContentTypePoll, ContentID: low.id, Score: 3},
		{ContentType: models.ContentTypePoll, ContentID: primitive.NewObjectID(), Score: 0},
	}}

	items, err := newTestService(trending, content).TrendingOnly(context.Background(), 50)
	if err != nil {
		t.Fatalf("TrendingOnly failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items (deleted and zero-score excluded), got %d", len(items))
	}
	if items[0].ID != high.id || items[1].ID != low.id {
		t.Errorf("Expected score-descending order, got %v then %v", items[0].ID, items[1].ID)
	}
}

func TestCandidateCapGrowsWithPage(t *testing.T) {
	service := newTestService(&fakeTrending{}, &fakeContent{})

	if got := service.candidateCapFor(1, 30); got != 90 {
		t.Errorf("Expected cap 90 for page 1 limit 30, got %d", got)
	}
	if got := service.candidateCapFor(5, 30); got != 450 {
		t.Errorf("Expected cap 450 for page 5 limit 30, got %d", got)
	}
	// Hard ceiling at the configured cap
	if got := service.candidateCapFor(50, 100); got != 1000 {
		t.Errorf("Expected cap ceiling 1000, got %d", got)
	}
}

func TestPaginateEdgeCases(t *testing.T) {
	page := paginate(nil, 1, 30)
	if len(page.Items) != 0 || page.Pagination.HasMore || page.Pagination.Total != 0 {
		t.Errorf("Expected empty page for empty feed, got %+v", page.Pagination)
	}

	items := []models.FeedItem{{CreatedAt: 1}, {CreatedAt: 2}, {CreatedAt: 3}}
	page = paginate(items, 1, 3)
	if page.Pagination.HasMore {
		t.Errorf("Expected hasMore=false when page exactly covers the feed")
	}
}
