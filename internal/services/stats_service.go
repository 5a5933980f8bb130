package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"communityhub/internal/database"
)

const statsCacheKey = "communityhub:community-stats"

// CommunityStats is the public activity summary shown on the landing page
type CommunityStats struct {
	ActiveMembers   int64 `json:"activeMembers"`
	PostsToday      int64 `json:"postsToday"`
	TopContributors int64 `json:"topContributors"`
}

// StatsService computes community-wide activity counts. Results are
// cached in Redis since the numbers only need to be fresh to the minute.
type StatsService struct {
	db       *database.MongoDB
	redis    *RedisService
	cacheTTL time.Duration
}

// NewStatsService creates a new stats service. redis may be nil; caching
// is then skipped.
func NewStatsService(db *database.MongoDB, redis *RedisService, cacheTTL time.Duration) *StatsService {
	return &StatsService{db: db, redis: redis, cacheTTL: cacheTTL}
}

// Get returns the current community stats, serving from cache when fresh
func (s *StatsService) Get(ctx context.Context) (*CommunityStats, error) {
	if s.redis != nil {
		var cached CommunityStats
		hit, err := s.redis.GetJSON(ctx, statsCacheKey, &cached)
		if err != nil {
			log.Printf("⚠️ [STATS] Cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, statsCacheKey, stats, s.cacheTTL); err != nil {
			log.Printf("⚠️ [STATS] Cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (*CommunityStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since30 := now.AddDate(0, 0, -30)

	activeMembers, err := s.db.Collection(database.CollectionUsers).CountDocuments(ctx, bson.M{"isBlocked": false})
	if err != nil {
		return nil, err
	}

	var postsToday int64
	contentCollections := []string{database.CollectionBlogs, database.CollectionQuestions, database.CollectionPolls}
	for _, name := range contentCollections {
		count, err := s.db.Collection(name).CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": todayStart}})
		if err != nil {
			return nil, err
		}
		postsToday += count
	}

	// Distinct authors active in the last 30 days across all three types
	authors := make(map[string]struct{})
	for _, name := range contentCollections {
		ids, err := s.db.Collection(name).Distinct(ctx, "author", bson.M{
			"createdAt": bson.M{"$gte": since30},
			"author":    bson.M{"$ne": nil},
		})
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if oid, ok := id.(primitive.ObjectID); ok {
				authors[oid.Hex()] = struct{}{}
			}
		}
	}

	return &CommunityStats{
		ActiveMembers:   activeMembers,
		PostsToday:      postsToday,
		TopContributors: int64(len(authors)),
	}, nil
}
