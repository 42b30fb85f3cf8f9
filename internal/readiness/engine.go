package readiness

import (
	"context"
	"log/slog"
	"time"
)

// EventSource supplies a user's study sessions and mock attempts, ordered by timestamp.
type EventSource interface {
	LoadEvents(ctx context.Context, userID string) ([]StudySession, []MockAttempt, error)
}

// Evaluation is the full output of one scoring pass.
type Evaluation struct {
	Result   *ReadinessResult     `json:"result"`
	Topics   []TopicScore         `json:"topics"`
	Stats    map[string]TopicStat `json:"stats"`
	Rejected []*InvalidEventError `json:"-"`
}

// Engine runs the aggregator and scorer over a materialised event snapshot.
type Engine struct {
	aggregator *Aggregator
	scorer     *Scorer
}

func NewEngine(catalog *Catalog, logger *slog.Logger, opts ...ScorerOption) *Engine {
	return &Engine{
		aggregator: NewAggregator(catalog, logger),
		scorer:     NewScorer(opts...),
	}
}

// WeakAreaLimit returns the N used for weak-area ranking.
func (e *Engine) WeakAreaLimit() int {
	return e.scorer.WeakAreaLimit()
}

// Evaluate aggregates the events as of now and scores them. Weights are checked
// before any aggregation so a bad configuration yields no partial result.
func (e *Engine) Evaluate(sessions []StudySession, attempts []MockAttempt, weights ScoringWeights, now time.Time) (*Evaluation, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	stats, rejected := e.aggregator.Aggregate(sessions, attempts, now)
	topics, err := e.scorer.ScoreTopics(stats, weights)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		Result:   e.scorer.rank(topics, now),
		Topics:   topics,
		Stats:    stats,
		Rejected: rejected,
	}, nil
}
