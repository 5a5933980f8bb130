package trending

import (
	"math"
	"testing"

	"communityhub/internal/models"
)

func TestComputeWeightedEngagement(t *testing.T) {
	tests := []struct {
		name        string
		contentType models.ContentType
		deltas      models.ScoreBreakdown
		expected    float64
	}{
		{
			name:        "blog combines views likes comments shares",
			contentType: models.ContentTypeBlog,
			deltas:      models.ScoreBreakdown{ViewsDelta: 5, LikesDelta: 3, CommentsDelta: 2, SharesDelta: 1},
			expected:    1*5 + 6*3 + 10*2 + 12*1,
		},
		{
			name:        "blog views and likes only",
			contentType: models.ContentTypeBlog,
			deltas:      models.ScoreBreakdown{ViewsDelta: 5, LikesDelta: 3},
			expected:    23,
		},
		{
			name:        "question weighs answers heavily",
			contentType: models.ContentTypeQuestion,
			deltas:      models.ScoreBreakdown{ViewsDelta: 10, AnswersDelta: 2},
			expected:    1*10 + 12*2,
		},
		{
			name:        "question ignores blog metrics",
			contentType: models.ContentTypeQuestion,
			deltas:      models.ScoreBreakdown{ViewsDelta: 4, LikesDelta: 100, SharesDelta: 50},
			expected:    4,
		},
		{
			name:        "poll combines views and votes",
			contentType: models.ContentTypePoll,
			deltas:      models.ScoreBreakdown{ViewsDelta: 7, VotesDelta: 3},
			expected:    1*7 + 8*3,
		},
		{
			name:        "unknown type scores zero",
			contentType: models.ContentType("video"),
			deltas:      models.ScoreBreakdown{ViewsDelta: 100},
			expected:    0,
		},
		{
			name:        "zero deltas score zero",
			contentType: models.ContentTypeBlog,
			deltas:      models.ScoreBreakdown{},
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWeightedEngagement(tt.contentType, tt.deltas)
			if got != tt.expected {
				t.Errorf("Expected weighted engagement %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScoreWithAge(t *testing.T) {
	// 23 weighted engagement at 3 hours: 23 / sqrt(4) = 11.5
	if got := ScoreWithAge(23, 3); got != 11.5 {
		t.Errorf("Expected score 11.5, got %v", got)
	}

	// Zero age divides by sqrt(1) = 1
	if got := ScoreWithAge(42, 0); got != 42 {
		t.Errorf("Expected score 42 at zero age, got %v", got)
	}

	// Negative age clamps to zero
	if got := ScoreWithAge(42, -5); got != 42 {
		t.Errorf("Expected negative age to clamp to zero, got %v", got)
	}

	// NaN age treated as zero
	if got := ScoreWithAge(42, math.NaN()); got != 42 {
		t.Errorf("Expected NaN age to clamp to zero, got %v", got)
	}

	// Zero engagement stays zero at any age
	if got := ScoreWithAge(0, 100); got != 0 {
		t.Errorf("Expected zero engagement to score zero, got %v", got)
	}
}

func TestScoreWithAgeDeterministic(t *testing.T) {
	a := ScoreWithAge(17.5, 6.25)
	b := ScoreWithAge(17.5, 6.25)
	if a != b {
		t.Errorf("Expected identical scores for identical inputs, got %v and %v", a, b)
	}
}

func TestScoreWithAgeMonotonicDecay(t *testing.T) {
	previous := math.Inf(1)
	for age := 0.0; age <= 100; age += 0.5 {
		score := ScoreWithAge(50, age)
		if score < 0 {
			t.Fatalf("Score went negative at age %v: %v", age, score)
		}
		if score > previous {
			t.Fatalf("Score increased with age at %v: %v > %v", age, score, previous)
		}
		previous = score
	}
}
