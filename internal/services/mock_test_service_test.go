package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockTestFixture() (*mockTestService, *MockRepository, *MockReadinessService, *events.MockEventPublisher) {
	repo := newMockRepository()
	readinessSvc := &MockReadinessService{}
	publisher := events.NewMockEventPublisher(testLogger())
	catalog := readiness.DefaultCatalog()

	svc := NewMockTestService(repo, readinessSvc, publisher, catalog, validator.New(catalog), testLogger()).(*mockTestService)
	svc.now = func() time.Time { return baseTime }
	return svc, repo, readinessSvc, publisher
}

func TestMockTestService_ListTests(t *testing.T) {
	ctx := context.Background()
	latest := map[string]*models.MockAttempt{
		"tcs-nqt-1": {ID: 4, MockTestID: "tcs-nqt-1", QuestionsTotal: 50, QuestionsCorrect: 36, AttemptedAt: baseTime},
	}

	t.Run("all companies", func(t *testing.T) {
		svc, repo, _, _ := newMockTestFixture()
		repo.mockAttemptRepo.On("GetLatestByTest", mock.Anything, mock.Anything, "user-1").Return(latest, nil)

		tests, err := svc.ListTests(ctx, "user-1", "")
		require.NoError(t, err)
		require.Len(t, tests, 4)

		first := tests[0]
		assert.Equal(t, "tcs-nqt-1", first.ID)
		assert.True(t, first.Attempted)
		require.NotNil(t, first.LastScore)
		assert.Equal(t, 72, *first.LastScore)
		assert.InDelta(t, 0.72, *first.LastAccuracy, 1e-9)
		assert.Equal(t, baseTime, *first.LastAttemptedAt)

		assert.False(t, tests[1].Attempted)
		assert.Nil(t, tests[1].LastScore)
	})

	t.Run("company filter is case insensitive", func(t *testing.T) {
		svc, repo, _, _ := newMockTestFixture()
		repo.mockAttemptRepo.On("GetLatestByTest", mock.Anything, mock.Anything, "user-1").Return(map[string]*models.MockAttempt{}, nil)

		tests, err := svc.ListTests(ctx, "user-1", "tcs")
		require.NoError(t, err)
		require.Len(t, tests, 2)
		assert.Equal(t, "tcs-nqt-1", tests[0].ID)
		assert.Equal(t, "tcs-digital", tests[1].ID)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo, _, _ := newMockTestFixture()
		repo.mockAttemptRepo.On("GetLatestByTest", mock.Anything, mock.Anything, "user-1").
			Return(map[string]*models.MockAttempt(nil), errors.New("timeout"))

		_, err := svc.ListTests(ctx, "user-1", "")
		assert.Error(t, err)
	})
}

func TestMockTestService_RecordAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("records attempt with company from catalog", func(t *testing.T) {
		svc, repo, readinessSvc, publisher := newMockTestFixture()
		repo.mockAttemptRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(a *models.MockAttempt) bool {
			return a.UserID == "user-1" && a.CompanyTag == "Infosys" && a.AttemptedAt.Equal(baseTime)
		})).Run(func(args mock.Arguments) {
			args.Get(2).(*models.MockAttempt).ID = 11
		}).Return(nil)
		readinessSvc.On("Invalidate", mock.Anything, "user-1").Return(nil)

		resp, err := svc.RecordAttempt(ctx, "user-1", &RecordAttemptRequest{
			MockTestID:       "infosys-aptitude",
			QuestionsTotal:   40,
			QuestionsCorrect: 30,
			DurationMinutes:  55,
		})
		require.NoError(t, err)

		assert.Equal(t, uint(11), resp.ID)
		assert.Equal(t, "Infosys Aptitude Test", resp.MockTestName)
		assert.Equal(t, 75, resp.Score)

		recorded := publisher.EventsOfType(events.EventMockAttemptRecorded)
		require.Len(t, recorded, 1)
		payload := recorded[0].Data.(events.MockAttemptRecordedEvent)
		assert.Equal(t, uint(11), payload.AttemptID)
		assert.InDelta(t, 0.75, payload.Accuracy, 1e-9)

		repo.AssertExpectations(t)
		readinessSvc.AssertExpectations(t)
	})

	invalid := []struct {
		name  string
		req   *RecordAttemptRequest
		field string
		rule  string
	}{
		{"unknown mock test", &RecordAttemptRequest{MockTestID: "amazon-sde", QuestionsTotal: 40, QuestionsCorrect: 10, DurationMinutes: 30}, "mock_test_id", "unknown_mock_test"},
		{"question count mismatch", &RecordAttemptRequest{MockTestID: "tcs-nqt-1", QuestionsTotal: 40, QuestionsCorrect: 10, DurationMinutes: 30}, "questions_total", "question_count"},
		{"more correct than total", &RecordAttemptRequest{MockTestID: "tcs-nqt-1", QuestionsTotal: 50, QuestionsCorrect: 51, DurationMinutes: 30}, "questions_correct", "ltefield"},
		{"negative correct", &RecordAttemptRequest{MockTestID: "tcs-nqt-1", QuestionsTotal: 50, QuestionsCorrect: -1, DurationMinutes: 30}, "questions_correct", "gte"},
		{"missing duration", &RecordAttemptRequest{MockTestID: "tcs-nqt-1", QuestionsTotal: 50, QuestionsCorrect: 20}, "duration_minutes", "required"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, readinessSvc, publisher := newMockTestFixture()

			resp, err := svc.RecordAttempt(ctx, "user-1", tt.req)
			assert.Nil(t, resp)
			require.True(t, IsValidation(err))

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.rule, errs[0].Rule)

			repo.mockAttemptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			readinessSvc.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			assert.Empty(t, publisher.GetPublishedEvents())
		})
	}
}

func TestMockTestService_ListAttempts(t *testing.T) {
	svc, repo, _, _ := newMockTestFixture()
	attempts := []*models.MockAttempt{
		{ID: 2, MockTestID: "tcs-digital", QuestionsTotal: 45, QuestionsCorrect: 18},
		{ID: 1, MockTestID: "retired-test", QuestionsTotal: 10, QuestionsCorrect: 10},
	}
	repo.mockAttemptRepo.On("List", mock.Anything, mock.Anything, "user-1", mock.MatchedBy(func(f repositories.MockAttemptFilters) bool {
		return f.Limit == 100
	})).Return(attempts, int64(2), nil)

	resp, err := svc.ListAttempts(context.Background(), "user-1", repositories.MockAttemptFilters{Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Limit)
	require.Len(t, resp.Attempts, 2)
	assert.Equal(t, "TCS Digital Mock Test", resp.Attempts[0].MockTestName)
	assert.Equal(t, 40, resp.Attempts[0].Score)
	assert.Equal(t, "retired-test", resp.Attempts[1].MockTestName)
	assert.Equal(t, 100, resp.Attempts[1].Score)
}

func TestMockTestService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("no attempts", func(t *testing.T) {
		svc, repo, _, _ := newMockTestFixture()
		repo.mockAttemptRepo.On("GetAllByUser", mock.Anything, mock.Anything, "user-1").Return([]*models.MockAttempt{}, nil)

		summary, err := svc.Summary(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, &MockTestSummary{}, summary)
	})

	t.Run("mean of per attempt accuracy", func(t *testing.T) {
		svc, repo, _, _ := newMockTestFixture()
		repo.mockAttemptRepo.On("GetAllByUser", mock.Anything, mock.Anything, "user-1").Return([]*models.MockAttempt{
			{MockTestID: "tcs-nqt-1", QuestionsTotal: 50, QuestionsCorrect: 40},
			{MockTestID: "tcs-nqt-1", QuestionsTotal: 50, QuestionsCorrect: 25},
			{MockTestID: "infosys-aptitude", QuestionsTotal: 40, QuestionsCorrect: 36},
		}, nil)

		summary, err := svc.Summary(ctx, "user-1")
		require.NoError(t, err)

		assert.Equal(t, 3, summary.TestsTaken)
		assert.Equal(t, 2, summary.DistinctTests)
		// (0.8 + 0.5 + 0.9) / 3
		assert.Equal(t, 73, summary.AverageAccuracy)
		assert.Equal(t, 90, summary.BestScore)
	})
}
