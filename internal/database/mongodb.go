package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB wraps the MongoDB client and database
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	dbName   string
}

// Collection names
const (
	CollectionUsers          = "users"
	CollectionCategories     = "categories"
	CollectionBlogs          = "blogs"
	CollectionQuestions      = "questions"
	CollectionAnswers        = "answers"
	CollectionPolls          = "polls"
	CollectionAnnouncements  = "announcements"
	CollectionTrendingScores = "trending_scores"
)

// NewMongoDB creates a new MongoDB connection with connection pooling
func NewMongoDB(uri string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := extractDBName(uri)
	if dbName == "" {
		dbName = "communityhub"
	}

	db := &MongoDB{
		client:   client,
		database: client.Database(dbName),
		dbName:   dbName,
	}

	log.Printf("✅ Connected to MongoDB database: %s", dbName)

	return db, nil
}

// extractDBName extracts the database name from MongoDB URI
// mongodb://localhost:27017/communityhub?authSource=admin -> communityhub
func extractDBName(uri string) string {
	lastSlash := -1
	questionMark := -1

	for i, c := range uri {
		if c == '/' {
			lastSlash = i
		}
		if c == '?' && questionMark == -1 {
			questionMark = i
		}
	}

	if lastSlash != -1 {
		start := lastSlash + 1
		end := len(uri)
		if questionMark != -1 && questionMark > lastSlash {
			end = questionMark
		}
		if start < end {
			dbName := uri[start:end]
			if dbName != "" {
				return dbName
			}
		}
	}

	return "communityhub"
}

// Initialize creates indexes for all collections
func (m *MongoDB) Initialize(ctx context.Context) error {
	log.Println("📦 Initializing MongoDB indexes...")

	// Trending scores: the unique (contentType, contentId) index is what
	// makes the scoring upsert idempotent; the score index serves every
	// ranked read.
	if err := m.createIndexes(ctx, CollectionTrendingScores, []mongo.IndexModel{
		{Keys: bson.D{{Key: "contentType", Value: 1}, {Key: "contentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "contentType", Value: 1}, {Key: "score", Value: -1}}},
		{Keys: bson.D{{Key: "score", Value: -1}, {Key: "contentId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create trending_scores indexes: %w", err)
	}

	// Users collection indexes
	if err := m.createIndexes(ctx, CollectionUsers, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isBlocked", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	// Content collections: newest-first listing and category filtering
	// are the two access paths the feed composer uses.
	for _, name := range []string{CollectionBlogs, CollectionQuestions, CollectionPolls} {
		if err := m.createIndexes(ctx, name, []mongo.IndexModel{
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "author", Value: 1}}},
		}); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	// Answers: per-question listing and the scoring-time count aggregation
	if err := m.createIndexes(ctx, CollectionAnswers, []mongo.IndexModel{
		{Keys: bson.D{{Key: "question", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create answers indexes: %w", err)
	}

	// Announcements: active-window lookup used by the frontend banner
	if err := m.createIndexes(ctx, CollectionAnnouncements, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "startAt", Value: 1}, {Key: "endAt", Value: 1}, {Key: "priority", Value: -1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create announcements indexes: %w", err)
	}

	log.Println("✅ MongoDB indexes initialized successfully")
	return nil
}

// createIndexes creates indexes for a collection
func (m *MongoDB) createIndexes(ctx context.Context, collectionName string, indexes []mongo.IndexModel) error {
	collection := m.database.Collection(collectionName)
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Collection returns a collection handle
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// Client returns the underlying MongoDB client
func (m *MongoDB) Client() *mongo.Client {
	return m.client
}

// Database returns the underlying MongoDB database
func (m *MongoDB) Database() *mongo.Database {
	return m.database
}

// Close closes the MongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	log.Println("🔌 Closing MongoDB connection...")
	return m.client.Disconnect(ctx)
}

// Ping checks if the database connection is alive
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}
