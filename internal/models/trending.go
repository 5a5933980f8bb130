package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementTotals holds the last-observed cumulative counters for one
// content item. Only the metrics relevant to the content type are set;
// the rest stay zero.
type EngagementTotals struct {
	Views    int64 `bson:"views" json:"views"`
	Likes    int64 `bson:"likes" json:"likes"`
	Comments int64 `bson:"comments" json:"comments"`
	Shares   int64 `bson:"shares" json:"shares"`
	Answers  int64 `bson:"answers" json:"answers"`
	Votes    int64 `bson:"votes" json:"votes"`
}

// ScoreBreakdown records the per-metric deltas of the last scoring pass
// and the combined weighted engagement before age decay
type ScoreBreakdown struct {
	ViewsDelta         int64   `bson:"viewsDelta" json:"viewsDelta"`
	LikesDelta         int64   `bson:"likesDelta" json:"likesDelta"`
	CommentsDelta      int64   `bson:"commentsDelta" json:"commentsDelta"`
	SharesDelta        int64   `bson:"sharesDelta" json:"sharesDelta"`
	AnswersDelta       int64   `bson:"answersDelta" json:"answersDelta"`
	VotesDelta         int64   `bson:"votesDelta" json:"votesDelta"`
	WeightedEngagement float64 `bson:"weightedEngagement" json:"weightedEngagement"`
}

// TrendingScore is the persisted trending state for one content item.
// At most one record exists per (contentType, contentId), enforced by a
// unique index.
type TrendingScore struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentType ContentType        `bson:"contentType" json:"contentType"`
	ContentID   primitive.ObjectID `bson:"contentId" json:"contentId"`
	Score       float64            `bson:"score" json:"score"`
	LastTotals  EngagementTotals   `bson:"lastTotals" json:"lastTotals"`
	Breakdown   ScoreBreakdown     `bson:"breakdown" json:"breakdown"`
	ComputedAt  time.Time          `bson:"computedAt" json:"computedAt"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Key returns the (type, id) identity of the referenced content item
func (t *TrendingScore) Key() string {
	return ContentKey(t.ContentType, t.ContentID)
}

// AdminTrendingEntry is the flattened row returned by the admin trending
// endpoint: score metadata plus a whitelisted projection of the document
type AdminTrendingEntry struct {
	Type       ContentType        `json:"type"`
	ID         primitive.ObjectID `json:"id"`
	Score      float64            `json:"score"`
	ComputedAt time.Time          `json:"computedAt"`
	Doc        interface{}        `json:"doc"`
}
