package trending

import (
	"testing"

	"communityhub/internal/models"
)

func TestTrackDeltas(t *testing.T) {
	tests := []struct {
		name     string
		current  models.EngagementTotals
		previous *models.EngagementTotals
		expected models.ScoreBreakdown
	}{
		{
			name:     "first observation treats previous as zero",
			current:  models.EngagementTotals{Views: 10, Likes: 2},
			previous: nil,
			expected: models.ScoreBreakdown{ViewsDelta: 10, LikesDelta: 2},
		},
		{
			name:     "growth since last cycle",
			current:  models.EngagementTotals{Views: 15, Likes: 5},
			previous: &models.EngagementTotals{Views: 10, Likes: 2},
			expected: models.ScoreBreakdown{ViewsDelta: 5, LikesDelta: 3},
		},
		{
			name:     "decreasing counters clamp to zero",
			current:  models.EngagementTotals{Views: 15, Likes: 1},
			previous: &models.EngagementTotals{Views: 10, Likes: 4},
			expected: models.ScoreBreakdown{ViewsDelta: 5, LikesDelta: 0},
		},
		{
			name:     "unchanged counters yield zero deltas",
			current:  models.EngagementTotals{Views: 10, Answers: 3},
			previous: &models.EngagementTotals{Views: 10, Answers: 3},
			expected: models.ScoreBreakdown{},
		},
		{
			name:     "all metrics tracked independently",
			current:  models.EngagementTotals{Views: 5, Likes: 4, Comments: 3, Shares: 2, Answers: 1, Votes: 6},
			previous: &models.EngagementTotals{Views: 1, Likes: 1, Comments: 1, Shares: 1, Answers: 1, Votes: 1},
			expected: models.ScoreBreakdown{ViewsDelta: 4, LikesDelta: 3, CommentsDelta: 2, SharesDelta: 1, AnswersDelta: 0, VotesDelta: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrackDeltas(tt.current, tt.previous)
			if got != tt.expected {
				t.Errorf("Expected deltas %+v, got %+v", tt.expected, got)
			}
		})
	}
}

// Two consecutive cycles on the documented blog scenario: totals move
// from (10 views, 2 likes) to (15, 5), giving deltas (5, 3), weighted
// engagement 23, and a score of 11.5 at three hours of age.
func TestBlogScenarioAcrossCycles(t *testing.T) {
	cycle1 := TrackDeltas(models.EngagementTotals{Views: 10, Likes: 2}, nil)
	if cycle1.ViewsDelta != 10 || cycle1.LikesDelta != 2 {
		t.Fatalf("Unexpected first cycle deltas: %+v", cycle1)
	}

	stored := models.EngagementTotals{Views: 10, Likes: 2}
	cycle2 := TrackDeltas(models.EngagementTotals{Views: 15, Likes: 5}, &stored)
	if cycle2.ViewsDelta != 5 || cycle2.LikesDelta != 3 {
		t.Fatalf("Unexpected second cycle deltas: %+v", cycle2)
	}

	we := ComputeWeightedEngagement(models.ContentTypeBlog, cycle2)
	if we != 23 {
		t.Fatalf("Expected weighted engagement 23, got %v", we)
	}

	if score := ScoreWithAge(we, 3); score != 11.5 {
		t.Errorf("Expected score 11.5, got %v", score)
	}
}
