package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a site-wide banner managed by admins. The feed server
// never writes announcements; the collection is indexed here so the
// shared database initializer covers it.
type Announcement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	ContentHTML string             `bson:"contentHtml,omitempty" json:"contentHtml,omitempty"`
	LinkURL     string             `bson:"linkUrl,omitempty" json:"linkUrl,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	Priority    int                `bson:"priority" json:"priority"`
	StartAt     *time.Time         `bson:"startAt,omitempty" json:"startAt,omitempty"`
	EndAt       *time.Time         `bson:"endAt,omitempty" json:"endAt,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
