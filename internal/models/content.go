package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContentType identifies which collection a ranked item belongs to
type ContentType string

const (
	ContentTypeBlog     ContentType = "blog"
	ContentTypeQuestion ContentType = "question"
	ContentTypePoll     ContentType = "poll"
)

// AllContentTypes lists every rankable content type
var AllContentTypes = []ContentType{ContentTypeBlog, ContentTypeQuestion, ContentTypePoll}

// IsValid reports whether t is a known content type
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeBlog, ContentTypeQuestion, ContentTypePoll:
		return true
	}
	return false
}

// FeedItem is the wire representation of one entry in a composed feed.
// It is built at read time and never persisted. CreatedAt is epoch millis.
// ID is kept for in-process deduplication and is not serialized.
type FeedItem struct {
	Type      ContentType        `json:"type"`
	CreatedAt int64              `json:"createdAt"`
	Doc       interface{}        `json:"doc"`
	ID        primitive.ObjectID `json:"-"`
}

// Key returns the (type, id) identity used for feed deduplication
func (f FeedItem) Key() string {
	return ContentKey(f.Type, f.ID)
}

// ContentKey builds the "type:hexid" identity string for a content item
func ContentKey(t ContentType, id primitive.ObjectID) string {
	return string(t) + ":" + id.Hex()
}
