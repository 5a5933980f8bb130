package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a community question; its answer count lives in the
// answers collection and is aggregated at scoring time
type Question struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    primitive.ObjectID `bson:"category" json:"-"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Author      primitive.ObjectID `bson:"author,omitempty" json:"-"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	Slug        string             `bson:"slug,omitempty" json:"slug,omitempty"`
	ViewsCount  int64              `bson:"viewsCount" json:"viewsCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedQuestion is a question with author and category resolved
type PopulatedQuestion struct {
	Question    `bson:",inline"`
	AuthorDoc   *AuthorRef `bson:"authorDoc,omitempty" json:"author,omitempty"`
	CategoryDoc *Category  `bson:"categoryDoc,omitempty" json:"category,omitempty"`
}
