package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileImage holds the stored image reference for a user avatar
type ProfileImage struct {
	PublicID string `bson:"public_id,omitempty" json:"public_id,omitempty"`
	Key      string `bson:"key,omitempty" json:"key,omitempty"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
}

// User is a community member. Account management (signup, password, OTP)
// lives in the auth service; this server only reads users for feed
// personalization and admin checks.
type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Fullname        string               `bson:"fullname" json:"fullname"`
	Email           string               `bson:"email" json:"email"`
	Phone           string               `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileImage    ProfileImage         `bson:"profileimage,omitempty" json:"profileimage,omitempty"`
	Role            string               `bson:"role,omitempty" json:"role,omitempty"` // "admin" or "user"
	Bio             string               `bson:"bio,omitempty" json:"bio,omitempty"`
	SocialLink      string               `bson:"socialLink,omitempty" json:"socialLink,omitempty"`
	InterestedTopic []primitive.ObjectID `bson:"interested_topic,omitempty" json:"interested_topic,omitempty"`
	IsBlocked       bool                 `bson:"isBlocked" json:"isBlocked"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// AuthorRef is the populated author projection embedded in feed documents
// (fullname, email and profile image only, matching the public author view)
type AuthorRef struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Fullname     string             `bson:"fullname" json:"fullname"`
	Email        string             `bson:"email" json:"email"`
	ProfileImage ProfileImage       `bson:"profileimage,omitempty" json:"profileimage,omitempty"`
}
