package readiness

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func arraysSessions() []StudySession {
	return []StudySession{
		{TopicID: "arrays", CategoryID: "DSA", Timestamp: baseTime.Add(-48 * time.Hour), DurationMinutes: 45, ConfidenceRating: 4},
		{TopicID: "arrays", CategoryID: "DSA", Timestamp: baseTime.Add(-24 * time.Hour), DurationMinutes: 30, ConfidenceRating: 5},
		{TopicID: "arrays", CategoryID: "DSA", Timestamp: baseTime, DurationMinutes: 60, ConfidenceRating: 3},
	}
}

func arraysAttempt() MockAttempt {
	return MockAttempt{
		MockTestID:       "arrays-drill",
		CompanyTag:       "TCS",
		Timestamp:        baseTime,
		QuestionsTotal:   10,
		QuestionsCorrect: 8,
		DurationMinutes:  20,
		TopicIDs:         []string{"arrays"},
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	agg := NewAggregator(nil, nil)
	now := baseTime.Add(24 * time.Hour)

	t.Run("empty input", func(t *testing.T) {
		stats, rejected := agg.Aggregate(nil, nil, now)
		assert.Empty(t, stats)
		assert.Empty(t, rejected)
	})

	t.Run("empty input with catalog", func(t *testing.T) {
		stats, rejected := NewAggregator(DefaultCatalog(), nil).Aggregate(nil, nil, now)
		assert.Empty(t, stats)
		assert.Empty(t, rejected)
	})

	t.Run("sessions and attempt", func(t *testing.T) {
		stats, rejected := agg.Aggregate(arraysSessions(), []MockAttempt{arraysAttempt()}, now)
		require.Empty(t, rejected)
		require.Len(t, stats, 1)

		stat := stats["arrays"]
		assert.Equal(t, "DSA", stat.Category)
		assert.Equal(t, 135, stat.TotalMinutes)
		assert.Equal(t, 3, stat.SessionCount)
		require.NotNil(t, stat.AverageConfidence)
		assert.InDelta(t, 4.0, *stat.AverageConfidence, 1e-9)
		assert.Equal(t, 1, stat.DaysSinceLastStudied)
		require.NotNil(t, stat.MockAccuracy)
		assert.InDelta(t, 0.8, *stat.MockAccuracy, 1e-9)
		assert.Equal(t, 1, stat.AttemptCount)
	})

	t.Run("accuracy weighted by questions total", func(t *testing.T) {
		attempts := []MockAttempt{
			{MockTestID: "a", Timestamp: baseTime, QuestionsTotal: 10, QuestionsCorrect: 10, DurationMinutes: 10, TopicIDs: []string{"graphs"}},
			{MockTestID: "b", Timestamp: baseTime, QuestionsTotal: 30, QuestionsCorrect: 0, DurationMinutes: 10, TopicIDs: []string{"graphs"}},
		}
		stats, _ := agg.Aggregate(nil, attempts, now)

		stat := stats["graphs"]
		require.NotNil(t, stat.MockAccuracy)
		assert.InDelta(t, 0.25, *stat.MockAccuracy, 1e-9)
		assert.Nil(t, stat.AverageConfidence)
		assert.Equal(t, NeverStudied, stat.DaysSinceLastStudied)
	})

	t.Run("invalid records are excluded", func(t *testing.T) {
		sessions := append(arraysSessions(),
			StudySession{TopicID: "arrays", Timestamp: now.Add(time.Hour), DurationMinutes: 30, ConfidenceRating: 3},
			StudySession{TopicID: "arrays", Timestamp: baseTime, DurationMinutes: 30, ConfidenceRating: 6},
		)
		attempts := []MockAttempt{
			{MockTestID: "x", Timestamp: baseTime, QuestionsTotal: 10, QuestionsCorrect: 11, DurationMinutes: 10, TopicIDs: []string{"arrays"}},
		}

		stats, rejected := agg.Aggregate(sessions, attempts, now)
		require.Len(t, rejected, 3)

		assert.Equal(t, EventKindSession, rejected[0].Kind)
		assert.Equal(t, 3, rejected[0].Index)
		assert.Equal(t, "timestamp", rejected[0].Field)
		assert.Equal(t, "confidence_rating", rejected[1].Field)
		assert.Equal(t, EventKindAttempt, rejected[2].Kind)
		assert.Equal(t, "questions_correct", rejected[2].Field)
		assert.True(t, errors.Is(rejected[0], ErrInvalidEvent))

		assert.Equal(t, 3, stats["arrays"].SessionCount)
		assert.Equal(t, 0, stats["arrays"].AttemptCount)
	})

	t.Run("catalog tags attempts and seeds topics", func(t *testing.T) {
		catalogAgg := NewAggregator(DefaultCatalog(), nil)
		attempt := MockAttempt{MockTestID: "infosys-aptitude", Timestamp: baseTime, QuestionsTotal: 40, QuestionsCorrect: 30, DurationMinutes: 60}

		stats, rejected := catalogAgg.Aggregate(nil, []MockAttempt{attempt}, now)
		require.Empty(t, rejected)
		assert.Len(t, stats, len(DefaultCatalog().Topics))

		for _, topicID := range []string{"time-and-work", "profit-and-loss", "percentages", "logical-reasoning", "data-interpretation"} {
			assert.Equal(t, 1, stats[topicID].AttemptCount, topicID)
			assert.Equal(t, "Aptitude", stats[topicID].Category, topicID)
		}
		assert.False(t, stats["arrays"].HasEvidence())
		assert.Equal(t, "DSA", stats["arrays"].Category)
	})

	t.Run("untagged attempt is ignored", func(t *testing.T) {
		attempt := MockAttempt{MockTestID: "unknown", Timestamp: baseTime, QuestionsTotal: 10, QuestionsCorrect: 5, DurationMinutes: 10}
		stats, rejected := agg.Aggregate(nil, []MockAttempt{attempt}, now)
		assert.Empty(t, stats)
		assert.Empty(t, rejected)
	})

	t.Run("duplicate topic tags count once", func(t *testing.T) {
		attempt := arraysAttempt()
		attempt.TopicIDs = []string{"arrays", "arrays"}
		stats, _ := agg.Aggregate(nil, []MockAttempt{attempt}, now)
		assert.Equal(t, 1, stats["arrays"].AttemptCount)
	})

	t.Run("blank topic tag is rejected", func(t *testing.T) {
		attempt := arraysAttempt()
		attempt.TopicIDs = []string{"arrays", ""}
		stats, rejected := agg.Aggregate(nil, []MockAttempt{attempt}, now)
		require.Len(t, rejected, 1)
		assert.Equal(t, EventKindAttempt, rejected[0].Kind)
		assert.Equal(t, "topic_ids[1]", rejected[0].Field)
		assert.Empty(t, stats)
	})

	t.Run("unknown topic category is deterministic", func(t *testing.T) {
		sessions := []StudySession{
			{TopicID: "puzzles", CategoryID: "Misc", Timestamp: baseTime, DurationMinutes: 10, ConfidenceRating: 2},
			{TopicID: "puzzles", CategoryID: "Aptitude", Timestamp: baseTime, DurationMinutes: 10, ConfidenceRating: 2},
		}
		stats, _ := agg.Aggregate(sessions, nil, now)
		assert.Equal(t, "Aptitude", stats["puzzles"].Category)
	})
}

func TestAggregator_OrderIndependent(t *testing.T) {
	agg := NewAggregator(DefaultCatalog(), nil)
	now := baseTime.Add(72 * time.Hour)

	sessions := []StudySession{
		{TopicID: "arrays", CategoryID: "DSA", Timestamp: baseTime.Add(-5 * 24 * time.Hour), DurationMinutes: 40, ConfidenceRating: 2},
		{TopicID: "dbms", CategoryID: "Core", Timestamp: baseTime.Add(-3 * 24 * time.Hour), DurationMinutes: 25, ConfidenceRating: 4},
		{TopicID: "arrays", CategoryID: "DSA", Timestamp: baseTime, DurationMinutes: 90, ConfidenceRating: 5},
		{TopicID: "grammar", CategoryID: "English", Timestamp: baseTime.Add(-time.Hour), DurationMinutes: 15, ConfidenceRating: 3},
		{TopicID: "dbms", CategoryID: "Core", Timestamp: baseTime.Add(-30 * time.Hour), DurationMinutes: 50, ConfidenceRating: 1},
	}
	attempts := []MockAttempt{
		{MockTestID: "tcs-nqt-1", Timestamp: baseTime, QuestionsTotal: 50, QuestionsCorrect: 33, DurationMinutes: 90},
		{MockTestID: "generic-placement", Timestamp: baseTime.Add(-time.Hour), QuestionsTotal: 60, QuestionsCorrect: 41, DurationMinutes: 110},
		{MockTestID: "tcs-nqt-1", Timestamp: baseTime.Add(-50 * time.Hour), QuestionsTotal: 50, QuestionsCorrect: 20, DurationMinutes: 85},
	}

	want, _ := agg.Aggregate(sessions, attempts, now)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		s := append([]StudySession(nil), sessions...)
		a := append([]MockAttempt(nil), attempts...)
		rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		rng.Shuffle(len(a), func(i, j int) { a[i], a[j] = a[j], a[i] })

		got, _ := agg.Aggregate(s, a, now)
		assert.Equal(t, want, got)
	}
}
