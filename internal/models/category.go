package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups content items and drives feed personalization
// (users pick interested topics by category id)
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
