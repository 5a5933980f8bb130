package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"communityhub/internal/database"
	"communityhub/internal/models"
	"communityhub/internal/trending"
)

// ContentService is the read-snapshot interface over the content
// collections owned by the CRUD service. The feed and trending layers
// only read through it; nothing here writes content documents.
type ContentService struct {
	db *database.MongoDB
}

// NewContentService creates a new content service
func NewContentService(db *database.MongoDB) *ContentService {
	return &ContentService{db: db}
}

func (s *ContentService) collectionFor(contentType models.ContentType) (*mongo.Collection, error) {
	switch contentType {
	case models.ContentTypeBlog:
		return s.db.Collection(database.CollectionBlogs), nil
	case models.ContentTypeQuestion:
		return s.db.Collection(database.CollectionQuestions), nil
	case models.ContentTypePoll:
		return s.db.Collection(database.CollectionPolls), nil
	}
	return nil, fmt.Errorf("unknown content type %q", contentType)
}

// Snapshots returns the current cumulative engagement counters for every
// item of the given type. Questions additionally pull their answer count
// from the answers collection in one aggregation.
func (s *ContentService) Snapshots(ctx context.Context, contentType models.ContentType) ([]trending.Snapshot, error) {
	switch contentType {
	case models.ContentTypeBlog:
		return s.blogSnapshots(ctx)
	case models.ContentTypeQuestion:
		return s.questionSnapshots(ctx)
	case models.ContentTypePoll:
		return s.pollSnapshots(ctx)
	}
	return nil, fmt.Errorf("unknown content type %q", contentType)
}

func (s *ContentService) blogSnapshots(ctx context.Context) ([]trending.Snapshot, error) {
	opts := options.Find().SetProjection(bson.M{
		"createdAt": 1, "viewsCount": 1, "likesCount": 1, "shareCount": 1, "comments": 1,
	})
	cursor, err := s.db.Collection(database.CollectionBlogs).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("failed to decode blogs: %w", err)
	}

	snapshots := make([]trending.Snapshot, 0, len(blogs))
	for _, b := range blogs {
		snapshots = append(snapshots, trending.Snapshot{
			ID:        b.ID,
			CreatedAt: b.CreatedAt,
			Totals: models.EngagementTotals{
				Views:    b.ViewsCount,
				Likes:    b.LikesCount,
				Comments: int64(len(b.Comments)),
				Shares:   b.ShareCount,
			},
		})
	}
	return snapshots, nil
}

func (s *ContentService) questionSnapshots(ctx context.Context) ([]trending.Snapshot, error) {
	opts := options.Find().SetProjection(bson.M{"createdAt": 1, "viewsCount": 1})
	cursor, err := s.db.Collection(database.CollectionQuestions).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	answerCounts, err := s.answerCounts(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]trending.Snapshot, 0, len(questions))
	for _, q := range questions {
		snapshots = append(snapshots, trending.Snapshot{
			ID:        q.ID,
			CreatedAt: q.CreatedAt,
			Totals: models.EngagementTotals{
				Views:   q.ViewsCount,
				Answers: answerCounts[q.ID],
			},
		})
	}
	return snapshots, nil
}

// answerCounts groups the answers collection by question id
func (s *ContentService) answerCounts(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$question", "c": bson.M{"$sum": 1}}}},
	}
	cursor, err := s.db.Collection(database.CollectionAnswers).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate answer counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"c"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode answer counts: %w", err)
	}

	counts := make(map[primitive.ObjectID]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

func (s *ContentService) pollSnapshots(ctx context.Context) ([]trending.Snapshot, error) {
	opts := options.Find().SetProjection(bson.M{"createdAt": 1, "viewsCount": 1, "options": 1})
	cursor, err := s.db.Collection(database.CollectionPolls).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer cursor.Close(ctx)

	var polls []models.Poll
	if err := cursor.All(ctx, &polls); err != nil {
		return nil, fmt.Errorf("failed to decode polls: %w", err)
	}

	snapshots := make([]trending.Snapshot, 0, len(polls))
	for _, p := range polls {
		snapshots = append(snapshots, trending.Snapshot{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			Totals: models.EngagementTotals{
				Views: p.ViewsCount,
				Votes: p.TotalVotes(),
			},
		})
	}
	return snapshots, nil
}

// Exists reports whether a content item is still present in its source
// collection. Used by orphan pruning.
func (s *ContentService) Exists(ctx context.Context, contentType models.ContentType, id primitive.ObjectID) (bool, error) {
	coll, err := s.collectionFor(contentType)
	if err != nil {
		return false, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// populateStages resolves the author and category references the way the
// feed endpoints expose them (author trimmed to its public projection)
func (s *ContentService) populateStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionUsers,
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorDoc",
		}}},
		{{Key: "$addFields", Value: bson.M{"authorDoc": bson.M{"$first": "$authorDoc"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionCategories,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "categoryDoc",
		}}},
		{{Key: "$addFields", Value: bson.M{"categoryDoc": bson.M{"$first": "$categoryDoc"}}}},
		{{Key: "$project", Value: bson.M{
			"authorDoc.passwordHash": 0,
			"authorDoc.password":     0,
			"authorDoc.phone":        0,
		}}},
	}
}

// Resolve fetches one content item as a populated feed item. A missing
// document returns (nil, nil): deleted content is skipped, not an error.
func (s *ContentService) Resolve(ctx context.Context, contentType models.ContentType, id primitive.ObjectID) (*models.FeedItem, error) {
	items, err := s.aggregateFeedItems(ctx, contentType, bson.M{"_id": id}, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// ContentQuery narrows a newest-first listing
type ContentQuery struct {
	Categories []primitive.ObjectID // match any of these categories
	ExcludeIDs []primitive.ObjectID // drop these ids ($nin)
	Limit      int
}

// ListNewest returns populated feed items of one type, newest first
func (s *ContentService) ListNewest(ctx context.Context, contentType models.ContentType, query ContentQuery) ([]models.FeedItem, error) {
	filter := bson.M{}
	if len(query.Categories) > 0 {
		filter["category"] = bson.M{"$in": query.Categories}
	}
	if len(query.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": query.ExcludeIDs}
	}
	return s.aggregateFeedItems(ctx, contentType, filter, query.Limit)
}

func (s *ContentService) aggregateFeedItems(ctx context.Context, contentType models.ContentType, filter bson.M, limit int) ([]models.FeedItem, error) {
	coll, err := s.collectionFor(contentType)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline, s.populateStages()...)

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", contentType, err)
	}
	defer cursor.Close(ctx)

	return s.decodeFeedItems(ctx, cursor, contentType)
}

func (s *ContentService) decodeFeedItems(ctx context.Context, cursor *mongo.Cursor, contentType models.ContentType) ([]models.FeedItem, error) {
	var items []models.FeedItem

	for cursor.Next(ctx) {
		var (
			id        primitive.ObjectID
			createdAt time.Time
			doc       interface{}
		)
		switch contentType {
		case models.ContentTypeBlog:
			var b models.PopulatedBlog
			if err := cursor.Decode(&b); err != nil {
				return nil, fmt.Errorf("failed to decode blog: %w", err)
			}
			id, createdAt, doc = b.ID, b.Blog.CreatedAt, b
		case models.ContentTypeQuestion:
			var q models.PopulatedQuestion
			if err := cursor.Decode(&q); err != nil {
				return nil, fmt.Errorf("failed to decode question: %w", err)
			}
			id, createdAt, doc = q.ID, q.Question.CreatedAt, q
		case models.ContentTypePoll:
			var p models.PopulatedPoll
			if err := cursor.Decode(&p); err != nil {
				return nil, fmt.Errorf("failed to decode poll: %w", err)
			}
			id, createdAt, doc = p.ID, p.Poll.CreatedAt, p
		}

		items = append(items, models.FeedItem{
			Type:      contentType,
			CreatedAt: createdAt.UnixMilli(),
			Doc:       doc,
			ID:        id,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error for %s: %w", contentType, err)
	}

	return items, nil
}

// AdminDoc fetches the whitelisted projection of one content item for
// the admin trending view. Missing documents return (nil, nil).
func (s *ContentService) AdminDoc(ctx context.Context, contentType models.ContentType, id primitive.ObjectID) (interface{}, error) {
	coll, err := s.collectionFor(contentType)
	if err != nil {
		return nil, err
	}

	var projection bson.M
	switch contentType {
	case models.ContentTypeBlog:
		projection = bson.M{"title": 1, "slug": 1, "image": 1, "likesCount": 1, "shareCount": 1, "viewsCount": 1, "comments": 1, "createdAt": 1}
	case models.ContentTypeQuestion:
		projection = bson.M{"title": 1, "viewsCount": 1, "createdAt": 1}
	case models.ContentTypePoll:
		projection = bson.M{"title": 1, "viewsCount": 1, "options": 1, "createdAt": 1}
	}

	var doc bson.M
	err = coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(projection)).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", contentType, id.Hex(), err)
	}
	return doc, nil
}

// FindUser loads one user (for feed personalization)
func (s *ContentService) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.db.Collection(database.CollectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", id.Hex(), err)
	}
	return &user, nil
}
