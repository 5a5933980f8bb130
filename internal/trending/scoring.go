package trending

import (
	"math"

	"communityhub/internal/models"
)

// Engagement weights per content type. A share or an answer is worth an
// order of magnitude more than a view; likes and votes sit in between.
var (
	blogWeights     = struct{ view, like, comment, share float64 }{1, 6, 10, 12}
	questionWeights = struct{ view, answer float64 }{1, 12}
	pollWeights     = struct{ view, vote float64 }{1, 8}
)

// ComputeWeightedEngagement combines per-metric deltas into a single
// scalar using the fixed weights for the content type. Unknown types
// score zero.
func ComputeWeightedEngagement(contentType models.ContentType, deltas models.ScoreBreakdown) float64 {
	switch contentType {
	case models.ContentTypeBlog:
		return blogWeights.view*float64(deltas.ViewsDelta) +
			blogWeights.like*float64(deltas.LikesDelta) +
			blogWeights.comment*float64(deltas.CommentsDelta) +
			blogWeights.share*float64(deltas.SharesDelta)
	case models.ContentTypeQuestion:
		return questionWeights.view*float64(deltas.ViewsDelta) +
			questionWeights.answer*float64(deltas.AnswersDelta)
	case models.ContentTypePoll:
		return pollWeights.view*float64(deltas.ViewsDelta) +
			pollWeights.vote*float64(deltas.VotesDelta)
	}
	return 0
}

// ScoreWithAge decays a weighted engagement value by the content item's
// age: score = we / sqrt(1 + ageHours). Square-root decay lets fresh
// content climb fast while old content needs proportionally more raw
// engagement to hold the same score.
func ScoreWithAge(weightedEngagement, ageHours float64) float64 {
	if ageHours < 0 || math.IsNaN(ageHours) {
		ageHours = 0
	}
	return weightedEngagement / math.Sqrt(1+ageHours)
}
