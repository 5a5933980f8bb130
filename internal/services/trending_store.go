package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"communityhub/internal/database"
	"communityhub/internal/models"
)

// ExistenceChecker answers whether a content item still exists in its
// source collection
type ExistenceChecker interface {
	Exists(ctx context.Context, contentType models.ContentType, id primitive.ObjectID) (bool, error)
}

// TrendingStore persists per-item trending state across scoring cycles.
// Every write is an independent single-document upsert, so concurrent
// feed reads see the latest committed record per item and never a torn
// write across the set.
type TrendingStore struct {
	collection *mongo.Collection
}

// NewTrendingStore creates a new trending store
func NewTrendingStore(db *database.MongoDB) *TrendingStore {
	return &TrendingStore{collection: db.Collection(database.CollectionTrendingScores)}
}

// scoreSort orders by score descending with contentId ascending as a
// stable tie-break
var scoreSort = bson.D{{Key: "score", Value: -1}, {Key: "contentId", Value: 1}}

// Find returns the stored record for one content item, or nil when the
// item has never been scored
func (s *TrendingStore) Find(ctx context.Context, contentType models.ContentType, contentID primitive.ObjectID) (*models.TrendingScore, error) {
	var record models.TrendingScore
	err := s.collection.FindOne(ctx, bson.M{"contentType": contentType, "contentId": contentID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending record %s/%s: %w", contentType, contentID.Hex(), err)
	}
	return &record, nil
}

// Upsert writes the score, totals and breakdown for one content item,
// keyed by (contentType, contentId). Idempotent: the unique index makes
// repeated upserts converge on a single record.
func (s *TrendingStore) Upsert(ctx context.Context, contentType models.ContentType, contentID primitive.ObjectID,
	score float64, lastTotals models.EngagementTotals, breakdown models.ScoreBreakdown, computedAt time.Time) error {

	filter := bson.M{"contentType": contentType, "contentId": contentID}
	update := bson.M{
		"$set": bson.M{
			"score":      score,
			"lastTotals": lastTotals,
			"breakdown":  breakdown,
			"computedAt": computedAt,
			"updatedAt":  computedAt,
		},
		"$setOnInsert": bson.M{"createdAt": computedAt},
	}

	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert trending record %s/%s: %w", contentType, contentID.Hex(), err)
	}
	return nil
}

// ListTopAll returns up to limit records across all content types,
// highest score first
func (s *TrendingStore) ListTopAll(ctx context.Context, limit int) ([]models.TrendingScore, error) {
	return s.list(ctx, bson.M{}, limit)
}

// ListTopByType returns up to limit records of one content type,
// highest score first
func (s *TrendingStore) ListTopByType(ctx context.Context, contentType models.ContentType, limit int) ([]models.TrendingScore, error) {
	return s.list(ctx, bson.M{"contentType": contentType}, limit)
}

// ListPositive returns up to limit records with score > 0, highest
// score first (the trending-only feed view)
func (s *TrendingStore) ListPositive(ctx context.Context, limit int) ([]models.TrendingScore, error) {
	return s.list(ctx, bson.M{"score": bson.M{"$gt": 0}}, limit)
}

func (s *TrendingStore) list(ctx context.Context, filter bson.M, limit int) ([]models.TrendingScore, error) {
	opts := options.Find().SetSort(scoreSort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list trending records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.TrendingScore
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode trending records: %w", err)
	}
	return records, nil
}

// PruneOrphans scans the whole trending table and deletes records whose
// content item no longer exists in its source collection. A failed
// existence check keeps the record for the next cycle rather than
// deleting on uncertain evidence. Returns the number of deleted records.
func (s *TrendingStore) PruneOrphans(ctx context.Context, source ExistenceChecker) (int64, error) {
	opts := options.Find().SetProjection(bson.M{"contentType": 1, "contentId": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to scan trending records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.TrendingScore
	if err := cursor.All(ctx, &records); err != nil {
		return 0, fmt.Errorf("failed to decode trending records: %w", err)
	}

	var pruned int64
	for _, record := range records {
		exists, err := source.Exists(ctx, record.ContentType, record.ContentID)
		if err != nil {
			log.Printf("⚠️ [TRENDING] Existence check failed for %s: %v", record.Key(), err)
			continue
		}
		if exists {
			continue
		}
		if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": record.ID}); err != nil {
			log.Printf("⚠️ [TRENDING] Failed to delete orphan %s: %v", record.Key(), err)
			continue
		}
		pruned++
	}
	return pruned, nil
}
