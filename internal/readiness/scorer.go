package readiness

import (
	"math"
	"sort"
	"time"
)

const (
	weightSumTolerance = 1e-6
	neutralAccuracy    = 0.5
	// sessionHalfSaturation is the session count at which the session part of
	// the consistency factor reaches one half.
	sessionHalfSaturation = 2.0
	maxConfidence         = 5.0
)

// Scorer combines topic statistics into a ReadinessResult.
// It is safe for concurrent use.
type Scorer struct {
	weakAreaLimit int
	clock         func() time.Time
}

// ScorerOption customises a Scorer.
type ScorerOption func(*Scorer)

// WithWeakAreaLimit sets how many weak areas are reported. Values below 1 keep the default.
func WithWeakAreaLimit(n int) ScorerOption {
	return func(s *Scorer) {
		if n > 0 {
			s.weakAreaLimit = n
		}
	}
}

// WithClock sets the clock used for ComputedAt.
func WithClock(clock func() time.Time) ScorerOption {
	return func(s *Scorer) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		weakAreaLimit: DefaultWeakAreaLimit,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WeakAreaLimit returns the configured N.
func (s *Scorer) WeakAreaLimit() int {
	return s.weakAreaLimit
}

// ValidateWeights checks a ScoringWeights configuration.
func ValidateWeights(w ScoringWeights) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"consistency_weight", w.ConsistencyWeight},
		{"accuracy_weight", w.AccuracyWeight},
		{"coverage_weight", w.CoverageWeight},
		{"recency_decay_half_life_days", w.RecencyDecayHalfLifeDays},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidConfigError{Field: f.name, Reason: "must be a finite number"}
		}
		if f.value < 0 {
			return &InvalidConfigError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if w.RecencyDecayHalfLifeDays == 0 {
		return &InvalidConfigError{Field: "recency_decay_half_life_days", Reason: "must be greater than zero"}
	}

	sum := w.ConsistencyWeight + w.AccuracyWeight + w.CoverageWeight
	if math.Abs(sum-1) > weightSumTolerance {
		return &InvalidConfigError{Field: "weights", Reason: "must sum to 1.0"}
	}
	return nil
}

// Score computes the overall readiness score and the weakest topics.
func (s *Scorer) Score(stats map[string]TopicStat, weights ScoringWeights) (*ReadinessResult, error) {
	topics, err := s.ScoreTopics(stats, weights)
	if err != nil {
		return nil, err
	}
	return s.rank(topics, s.clock()), nil
}

func (s *Scorer) rank(topics []TopicScore, computedAt time.Time) *ReadinessResult {
	result := &ReadinessResult{
		WeakAreas:  []WeakArea{},
		ComputedAt: computedAt.UTC(),
	}
	if len(topics) == 0 {
		return result
	}

	var sum float64
	var scored int
	for _, t := range topics {
		if t.Unstarted {
			continue
		}
		sum += t.raw
		scored++
	}
	if scored > 0 {
		result.OverallScore = toScore(sum / float64(scored))
	}

	ranked := make([]TopicScore, len(topics))
	copy(ranked, topics)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		if ranked[i].Coverage != ranked[j].Coverage {
			return ranked[i].Coverage < ranked[j].Coverage
		}
		return ranked[i].TopicID < ranked[j].TopicID
	})

	limit := s.weakAreaLimit
	if limit > len(ranked) {
		limit = len(ranked)
	}
	for _, t := range ranked[:limit] {
		result.WeakAreas = append(result.WeakAreas, WeakArea{
			TopicID:   t.TopicID,
			Score:     t.Score,
			Category:  t.Category,
			Unstarted: t.Unstarted,
		})
	}

	return result
}

// ScoreTopics returns the per-topic breakdown sorted by topic id.
func (s *Scorer) ScoreTopics(stats map[string]TopicStat, weights ScoringWeights) ([]TopicScore, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	out := make([]TopicScore, 0, len(stats))
	for topicID, stat := range stats {
		ts := TopicScore{
			TopicID:  topicID,
			Category: stat.Category,
		}
		if !stat.HasEvidence() {
			ts.Unstarted = true
			out = append(out, ts)
			continue
		}

		ts.Consistency = consistencyFactor(stat)
		ts.Accuracy = accuracyFactor(stat)
		ts.Coverage = coverageFactor(stat, weights.RecencyDecayHalfLifeDays)
		ts.raw = clamp(100*(weights.ConsistencyWeight*ts.Consistency+
			weights.AccuracyWeight*ts.Accuracy+
			weights.CoverageWeight*ts.Coverage), 0, 100)
		ts.Score = toScore(ts.raw)
		out = append(out, ts)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })
	return out, nil
}

// consistencyFactor saturates with session count and scales with average confidence.
func consistencyFactor(stat TopicStat) float64 {
	if stat.SessionCount <= 0 || stat.AverageConfidence == nil {
		return 0
	}
	sessions := 1 - math.Pow(2, -float64(stat.SessionCount)/sessionHalfSaturation)
	confidence := clamp(*stat.AverageConfidence/maxConfidence, 0, 1)
	return clamp(sessions*confidence, 0, 1)
}

func accuracyFactor(stat TopicStat) float64 {
	if stat.MockAccuracy == nil {
		return neutralAccuracy
	}
	return clamp(*stat.MockAccuracy, 0, 1)
}

// coverageFactor decays exponentially with the days since the topic was last studied.
func coverageFactor(stat TopicStat, halfLifeDays float64) float64 {
	if stat.SessionCount <= 0 || stat.DaysSinceLastStudied == NeverStudied {
		return 0
	}
	days := math.Max(0, float64(stat.DaysSinceLastStudied))
	return clamp(math.Pow(2, -days/halfLifeDays), 0, 1)
}

func toScore(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
