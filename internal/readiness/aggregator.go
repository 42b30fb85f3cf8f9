package readiness

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const day = 24 * time.Hour

// Aggregator turns raw study sessions and mock attempts into per-topic statistics.
// It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	catalog  *Catalog
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAggregator creates an aggregator. catalog may be nil, in which case only
// topics with evidence appear in the output and attempts need explicit TopicIDs.
func NewAggregator(catalog *Catalog, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Aggregator{
		catalog:  catalog,
		validate: validate,
		logger:   logger.With("component", "readiness_aggregator"),
	}
}

type topicAccumulator struct {
	category      string
	minutes       int
	sessions      int
	confidenceSum int
	lastStudied   time.Time
	attempts      int
	correct       int
	total         int
}

// Aggregate builds a TopicStat per topic. Records that fail validation or lie in
// the future relative to now are excluded and returned as InvalidEventErrors.
func (a *Aggregator) Aggregate(sessions []StudySession, attempts []MockAttempt, now time.Time) (map[string]TopicStat, []*InvalidEventError) {
	now = now.UTC()
	acc := make(map[string]*topicAccumulator)
	var rejected []*InvalidEventError

	get := func(topicID string) *topicAccumulator {
		t, ok := acc[topicID]
		if !ok {
			t = &topicAccumulator{}
			if topic, known := a.catalog.Topic(topicID); known {
				t.category = topic.Category
			}
			acc[topicID] = t
		}
		return t
	}

	for i, s := range sessions {
		if invalid := a.checkEvent(EventKindSession, i, s, s.Timestamp, now); invalid != nil {
			rejected = append(rejected, invalid)
			continue
		}

		t := get(s.TopicID)
		t.minutes += s.DurationMinutes
		t.sessions++
		t.confidenceSum += s.ConfidenceRating
		if ts := s.Timestamp.UTC(); ts.After(t.lastStudied) {
			t.lastStudied = ts
		}
		if _, known := a.catalog.Topic(s.TopicID); !known && s.CategoryID != "" {
			if t.category == "" || s.CategoryID < t.category {
				t.category = s.CategoryID
			}
		}
	}

	for i, m := range attempts {
		if invalid := a.checkEvent(EventKindAttempt, i, m, m.Timestamp, now); invalid != nil {
			rejected = append(rejected, invalid)
			continue
		}

		topics := m.TopicIDs
		if len(topics) == 0 {
			topics = a.catalog.TopicsForMockTest(m.MockTestID)
		}
		if len(topics) == 0 {
			a.logger.Debug("Mock attempt not tagged to any topic", "mock_test_id", m.MockTestID, "index", i)
			continue
		}

		for _, topicID := range dedupe(topics) {
			t := get(topicID)
			t.attempts++
			t.correct += m.QuestionsCorrect
			t.total += m.QuestionsTotal
		}
	}

	// Catalog topics without evidence are seeded as unstarted, but an empty
	// history still yields an empty mapping.
	if a.catalog != nil && len(acc) > 0 {
		for _, topic := range a.catalog.Topics {
			get(topic.ID)
		}
	}

	stats := make(map[string]TopicStat, len(acc))
	for topicID, t := range acc {
		stat := TopicStat{
			TopicID:              topicID,
			Category:             t.category,
			TotalMinutes:         t.minutes,
			SessionCount:         t.sessions,
			DaysSinceLastStudied: NeverStudied,
			AttemptCount:         t.attempts,
		}
		if t.sessions > 0 {
			avg := float64(t.confidenceSum) / float64(t.sessions)
			stat.AverageConfidence = &avg
			stat.DaysSinceLastStudied = int(now.Sub(t.lastStudied) / day)
		}
		if t.total > 0 {
			accuracy := float64(t.correct) / float64(t.total)
			stat.MockAccuracy = &accuracy
		}
		stats[topicID] = stat
	}

	return stats, rejected
}

func (a *Aggregator) checkEvent(kind EventKind, index int, event interface{}, ts time.Time, now time.Time) *InvalidEventError {
	var invalid *InvalidEventError

	if err := a.validate.Struct(event); err != nil {
		invalid = &InvalidEventError{Kind: kind, Index: index, Reason: err.Error()}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			invalid.Field = fieldErrs[0].Field()
			invalid.Reason = fmt.Sprintf("failed '%s' validation", fieldErrs[0].Tag())
		}
	} else if ts.After(now) {
		invalid = &InvalidEventError{Kind: kind, Index: index, Field: "timestamp", Reason: "is in the future"}
	}

	if invalid != nil {
		a.logger.Warn("Excluding invalid event from aggregation",
			"kind", kind,
			"index", index,
			"field", invalid.Field,
			"reason", invalid.Reason)
	}
	return invalid
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
