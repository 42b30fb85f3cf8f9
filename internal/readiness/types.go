package readiness

import (
	"math"
	"time"
)

// NeverStudied is the DaysSinceLastStudied value of a topic without sessions.
const NeverStudied = math.MaxInt32

// DefaultWeakAreaLimit is the number of weak areas reported when none is configured.
const DefaultWeakAreaLimit = 3

// StudySession is a single logged study block. Immutable once recorded.
type StudySession struct {
	TopicID          string    `json:"topic_id" validate:"required"`
	CategoryID       string    `json:"category_id"`
	Timestamp        time.Time `json:"timestamp" validate:"required"`
	DurationMinutes  int       `json:"duration_minutes" validate:"gt=0"`
	ConfidenceRating int       `json:"confidence_rating" validate:"min=1,max=5"`
}

// MockAttempt is one attempt at a mock test. Accuracy is derived, never stored.
type MockAttempt struct {
	MockTestID       string    `json:"mock_test_id" validate:"required"`
	CompanyTag       string    `json:"company_tag"`
	Timestamp        time.Time `json:"timestamp" validate:"required"`
	QuestionsTotal   int       `json:"questions_total" validate:"gt=0"`
	QuestionsCorrect int       `json:"questions_correct" validate:"min=0,ltefield=QuestionsTotal"`
	DurationMinutes  int       `json:"duration_minutes" validate:"gt=0"`

	// TopicIDs tags the attempt explicitly. When empty the catalog mapping
	// of MockTestID is used.
	TopicIDs []string `json:"topic_ids,omitempty" validate:"dive,required"`
}

// Accuracy returns the correct ratio of the attempt.
func (a MockAttempt) Accuracy() float64 {
	if a.QuestionsTotal <= 0 {
		return 0
	}
	return float64(a.QuestionsCorrect) / float64(a.QuestionsTotal)
}

// TopicStat is rebuilt on every scoring pass and never persisted.
type TopicStat struct {
	TopicID              string   `json:"topic_id"`
	Category             string   `json:"category"`
	TotalMinutes         int      `json:"total_minutes"`
	SessionCount         int      `json:"session_count"`
	AverageConfidence    *float64 `json:"average_confidence,omitempty"`
	DaysSinceLastStudied int      `json:"days_since_last_studied"`
	MockAccuracy         *float64 `json:"mock_accuracy,omitempty"`
	AttemptCount         int      `json:"attempt_count"`
}

// HasEvidence reports whether the topic has at least one session or attempt.
func (s TopicStat) HasEvidence() bool {
	return s.SessionCount > 0 || s.AttemptCount > 0
}

// ScoringWeights configures the Scorer. The three weights must sum to 1.
type ScoringWeights struct {
	ConsistencyWeight        float64 `json:"consistency_weight" validate:"gte=0"`
	AccuracyWeight           float64 `json:"accuracy_weight" validate:"gte=0"`
	CoverageWeight           float64 `json:"coverage_weight" validate:"gte=0"`
	RecencyDecayHalfLifeDays float64 `json:"recency_decay_half_life_days" validate:"gt=0"`
}

// DefaultScoringWeights returns the weights used when nothing is configured.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ConsistencyWeight:        0.4,
		AccuracyWeight:           0.35,
		CoverageWeight:           0.25,
		RecencyDecayHalfLifeDays: 7,
	}
}

// WeakArea is a topic in the lowest-N ranking.
type WeakArea struct {
	TopicID   string `json:"topic_id"`
	Score     int    `json:"score"`
	Category  string `json:"category"`
	Unstarted bool   `json:"unstarted"`
}

// ReadinessResult is the output of a scoring pass.
type ReadinessResult struct {
	OverallScore int        `json:"overall_score"`
	WeakAreas    []WeakArea `json:"weak_areas"`
	ComputedAt   time.Time  `json:"computed_at"`
}

// TopicScore is the per-topic factor breakdown behind a ReadinessResult.
type TopicScore struct {
	TopicID     string  `json:"topic_id"`
	Category    string  `json:"category"`
	Consistency float64 `json:"consistency"`
	Accuracy    float64 `json:"accuracy"`
	Coverage    float64 `json:"coverage"`
	Score       int     `json:"score"`
	Unstarted   bool    `json:"unstarted"`

	raw float64
}
