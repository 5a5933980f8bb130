package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentReply is a nested reply under a blog comment
type CommentReply struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Content   string             `bson:"content" json:"content"`
	ParentID  primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Comment is an embedded blog comment; the comment array length is the
// cumulative comment counter read by the trending tracker
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Replies   []CommentReply     `bson:"replies,omitempty" json:"replies,omitempty"`
}

// Blog is a published article with cumulative engagement counters
type Blog struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title           string               `bson:"title" json:"title"`
	Content         string               `bson:"content" json:"content"`
	MetaDescription string               `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Category        primitive.ObjectID   `bson:"category" json:"-"`
	Tags            []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Image           string               `bson:"image,omitempty" json:"image,omitempty"`
	ImageKey        string               `bson:"imageKey,omitempty" json:"imageKey,omitempty"`
	ImageAlt        string               `bson:"imageAlt,omitempty" json:"imageAlt,omitempty"`
	Author          primitive.ObjectID   `bson:"author,omitempty" json:"-"`
	ReadTime        string               `bson:"readTime,omitempty" json:"readTime,omitempty"`
	Status          string               `bson:"status,omitempty" json:"status,omitempty"`
	Slug            string               `bson:"slug,omitempty" json:"slug,omitempty"`
	LikedBy         []primitive.ObjectID `bson:"likedBy,omitempty" json:"likedBy,omitempty"`
	LikesCount      int64                `bson:"likesCount" json:"likesCount"`
	ShareCount      int64                `bson:"shareCount" json:"shareCount"`
	ViewsCount      int64                `bson:"viewsCount" json:"viewsCount"`
	Comments        []Comment            `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedBlog is a blog with author and category references resolved,
// as returned by feed endpoints
type PopulatedBlog struct {
	Blog        `bson:",inline"`
	AuthorDoc   *AuthorRef `bson:"authorDoc,omitempty" json:"author,omitempty"`
	CategoryDoc *Category  `bson:"categoryDoc,omitempty" json:"category,omitempty"`
}
