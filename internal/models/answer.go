package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerReply is a nested reply under an answer
type AnswerReply struct {
	User      primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Content   string             `bson:"content" json:"content"`
	ParentID  primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Answer belongs to a question; the per-question answer count feeds the
// question engagement totals
type Answer struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Question   primitive.ObjectID   `bson:"question" json:"question"`
	Author     primitive.ObjectID   `bson:"author,omitempty" json:"author,omitempty"`
	Content    string               `bson:"content" json:"content"`
	Likes      int64                `bson:"likes" json:"likes"`
	LikedBy    []primitive.ObjectID `bson:"likedBy,omitempty" json:"likedBy,omitempty"`
	IsAccepted bool                 `bson:"isAccepted" json:"isAccepted"`
	Replies    []AnswerReply        `bson:"replies,omitempty" json:"replies,omitempty"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}
