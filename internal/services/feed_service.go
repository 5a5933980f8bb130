package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"communityhub/internal/models"
)

// TrendingSource is the slice of the trending store the composer reads
type TrendingSource interface {
	ListTopAll(ctx context.Context, limit int) ([]models.TrendingScore, error)
	ListPositive(ctx context.Context, limit int) ([]models.TrendingScore, error)
}

// ContentSource resolves trending records to documents and lists content
// newest-first with category/exclusion filters
type ContentSource interface {
	Resolve(ctx context.Context, contentType models.ContentType, id primitive.ObjectID) (*models.FeedItem, error)
	ListNewest(ctx context.Context, contentType models.ContentType, query ContentQuery) ([]models.FeedItem, error)
}

// Pagination describes the slice of the composed feed that was returned
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
	Total   int  `json:"total"`
}

// FeedPage is one page of a composed feed
type FeedPage struct {
	Items      []models.FeedItem
	Pagination Pagination
}

// FeedService composes the ranked, mixed-type feed. Composition is pure
// read-time work: each request runs its own queries against the trending
// store and content sources, with no shared mutable state between
// concurrent reads.
type FeedService struct {
	trending     TrendingSource
	content      ContentSource
	candidateCap int
	metrics      *Metrics
}

// NewFeedService creates a new feed service. candidateCap bounds the
// per-stage over-fetch (the "cap" heuristic).
func NewFeedService(trending TrendingSource, content ContentSource, candidateCap int, metrics *Metrics) *FeedService {
	if candidateCap <= 0 {
		candidateCap = 1000
	}
	return &FeedService{
		trending:     trending,
		content:      content,
		candidateCap: candidateCap,
		metrics:      metrics,
	}
}

// candidateCapFor grows the over-fetch bound with the requested page so
// deep pages still have enough candidates after exclusion. Heuristic,
// not exact global ranking.
func (s *FeedService) candidateCapFor(page, limit int) int {
	fetchCap := limit * page * 3
	if fetchCap > s.candidateCap {
		fetchCap = s.candidateCap
	}
	return fetchCap
}

// ComposeFeed builds one page of the feed. interested carries the
// requester's interested-category ids; pass nil for the public variant.
// Order is always trending, then interested, then everything else;
// trending items lead when present, never interleaved with recency.
func (s *FeedService) ComposeFeed(ctx context.Context, page, limit int, interested []primitive.ObjectID) (*FeedPage, error) {
	if s.metrics != nil {
		start := time.Now()
		defer func() {
			s.metrics.FeedComposeDuration.Observe(time.Since(start).Seconds())
		}()
	}

	fetchCap := s.candidateCapFor(page, limit)

	trendingSet, exclude, err := s.trendingSet(ctx, fetchCap)
	if err != nil {
		return nil, err
	}

	var interestedSet []models.FeedItem
	if len(interested) > 0 {
		interestedSet, err = s.listStage(ctx, fetchCap, interested, exclude)
		if err != nil {
			return nil, err
		}
	}

	otherSet, err := s.listStage(ctx, fetchCap, nil, exclude)
	if err != nil {
		return nil, err
	}

	composed := make([]models.FeedItem, 0, len(trendingSet)+len(interestedSet)+len(otherSet))
	if len(trendingSet) > fetchCap {
		trendingSet = trendingSet[:fetchCap]
	}
	composed = append(composed, trendingSet...)
	composed = append(composed, interestedSet...)
	composed = append(composed, otherSet...)

	return paginate(composed, page, limit), nil
}

// trendingSet resolves the top trending records to feed items, skipping
// records whose document was deleted since the last scheduler pass, and
// seeds the per-type exclusion sets for the later stages.
func (s *FeedService) trendingSet(ctx context.Context, fetchCap int) ([]models.FeedItem, map[models.ContentType][]primitive.ObjectID, error) {
	records, err := s.trending.ListTopAll(ctx, fetchCap)
	if err != nil {
		return nil, nil, err
	}

	exclude := make(map[models.ContentType][]primitive.ObjectID)
	items := make([]models.FeedItem, 0, len(records))
	for _, record := range records {
		// Excluded even when the document is gone: a stale id in $nin is
		// harmless, and the record is pruned next cycle anyway.
		exclude[record.ContentType] = append(exclude[record.ContentType], record.ContentID)

		item, err := s.content.Resolve(ctx, record.ContentType, record.ContentID)
		if err != nil {
			return nil, nil, err
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items, exclude, nil
}

// listStage fetches up to cap items per content type, newest first,
// excluding everything already emitted, then merges the three lists into
// one createdAt-descending sequence capped at cap. Fetched ids are added
// to the exclusion sets so the next stage never repeats them.
func (s *FeedService) listStage(ctx context.Context, fetchCap int, categories []primitive.ObjectID, exclude map[models.ContentType][]primitive.ObjectID) ([]models.FeedItem, error) {
	var groups [][]models.FeedItem
	for _, contentType := range models.AllContentTypes {
		items, err := s.content.ListNewest(ctx, contentType, ContentQuery{
			Categories: categories,
			ExcludeIDs: exclude[contentType],
			Limit:      fetchCap,
		})
		if err != nil {
			return nil, err
		}
		groups = append(groups, items)
		for _, item := range items {
			exclude[contentType] = append(exclude[contentType], item.ID)
		}
	}

	merged := mergeAndSortByDate(groups)
	if len(merged) > fetchCap {
		merged = merged[:fetchCap]
	}
	return merged, nil
}

// TrendingOnly returns up to limit positively scored items resolved to
// full documents, highest score first. No pagination, no merge with
// other sets.
func (s *FeedService) TrendingOnly(ctx context.Context, limit int) ([]models.FeedItem, error) {
	records, err := s.trending.ListPositive(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]models.FeedItem, 0, len(records))
	for _, record := range records {
		item, err := s.content.Resolve(ctx, record.ContentType, record.ContentID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// mergeAndSortByDate flattens the per-type groups and orders them
// newest first. Stable sort keeps the type order deterministic on
// identical timestamps.
func mergeAndSortByDate(groups [][]models.FeedItem) []models.FeedItem {
	var merged []models.FeedItem
	for _, group := range groups {
		merged = append(merged, group...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt > merged[j].CreatedAt
	})
	return merged
}

// paginate slices the composed in-memory sequence. Pages beyond the end
// return an empty data array with hasMore false.
func paginate(composed []models.FeedItem, page, limit int) *FeedPage {
	skip := (page - 1) * limit
	if skip > len(composed) {
		skip = len(composed)
	}
	end := skip + limit
	if end > len(composed) {
		end = len(composed)
	}
	items := composed[skip:end]

	return &FeedPage{
		Items: items,
		Pagination: Pagination{
			Page:    page,
			Limit:   limit,
			HasMore: len(composed) > skip+len(items),
			Total:   len(composed),
		},
	}
}
