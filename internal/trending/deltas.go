package trending

import "communityhub/internal/models"

// TrackDeltas computes the per-metric non-negative deltas between the
// current cumulative counters and the previously stored totals. A nil
// previous (first observation) is treated as all zeros. Counters that
// decreased between cycles (e.g. an unlike) clamp to zero rather than
// subtracting from the score: engagement deltas are monotonic
// contributions only.
func TrackDeltas(current models.EngagementTotals, previous *models.EngagementTotals) models.ScoreBreakdown {
	var prev models.EngagementTotals
	if previous != nil {
		prev = *previous
	}
	return models.ScoreBreakdown{
		ViewsDelta:    clampDelta(current.Views, prev.Views),
		LikesDelta:    clampDelta(current.Likes, prev.Likes),
		CommentsDelta: clampDelta(current.Comments, prev.Comments),
		SharesDelta:   clampDelta(current.Shares, prev.Shares),
		AnswersDelta:  clampDelta(current.Answers, prev.Answers),
		VotesDelta:    clampDelta(current.Votes, prev.Votes),
	}
}

func clampDelta(current, previous int64) int64 {
	if d := current - previous; d > 0 {
		return d
	}
	return 0
}
