package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PollOption is one votable choice; Votes is a cumulative counter
type PollOption struct {
	Text  string `bson:"text" json:"text"`
	Votes int64  `bson:"votes" json:"votes"`
}

// Poll is a community poll; total engagement is views plus the sum of
// votes across all options
type Poll struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Slug               string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	Options            []PollOption       `bson:"options" json:"options"`
	Category           primitive.ObjectID `bson:"category" json:"-"`
	DurationDays       int                `bson:"durationDays,omitempty" json:"durationDays,omitempty"`
	AllowMultipleVotes bool               `bson:"allowMultipleVotes" json:"allowMultipleVotes"`
	Tags               []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Author             primitive.ObjectID `bson:"author,omitempty" json:"-"`
	Status             string             `bson:"status,omitempty" json:"status,omitempty"`
	ClosesAt           *time.Time         `bson:"closesAt,omitempty" json:"closesAt,omitempty"`
	ViewsCount         int64              `bson:"viewsCount" json:"viewsCount"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalVotes sums the vote counters across all options
func (p *Poll) TotalVotes() int64 {
	var total int64
	for _, opt := range p.Options {
		total += opt.Votes
	}
	return total
}

// PopulatedPoll is a poll with author and category resolved
type PopulatedPoll struct {
	Poll        `bson:",inline"`
	AuthorDoc   *AuthorRef `bson:"authorDoc,omitempty" json:"author,omitempty"`
	CategoryDoc *Category  `bson:"categoryDoc,omitempty" json:"category,omitempty"`
}
