package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
)

type mockTestService struct {
	repo      repositories.Repository
	readiness ReadinessService
	publisher events.EventPublisher
	catalog   *readiness.Catalog
	validator *validator.Validator
	logger    *ServiceLogger
	now       func() time.Time
}

func NewMockTestService(
	repo repositories.Repository,
	readinessService ReadinessService,
	publisher events.EventPublisher,
	catalog *readiness.Catalog,
	validator *validator.Validator,
	logger *slog.Logger,
) MockTestService {
	return &mockTestService{
		repo:      repo,
		readiness: readinessService,
		publisher: publisher,
		catalog:   catalog,
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: "readiness-service", Component: "mock_test"}),
		now:       time.Now,
	}
}

// ListTests returns the catalog mock tests, optionally for one company, with the
// caller's latest result on each.
func (s *mockTestService) ListTests(ctx context.Context, userID string, company string) ([]*MockTestResponse, error) {
	latest, err := s.repo.MockAttempt().GetLatestByTest(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest attempts: %w", err)
	}

	var tests []readiness.MockTest
	if s.catalog != nil {
		tests = s.catalog.MockTests
	}

	out := make([]*MockTestResponse, 0, len(tests))
	for _, test := range tests {
		if company != "" && !strings.EqualFold(test.Company, company) {
			continue
		}
		resp := &MockTestResponse{MockTest: test}
		if attempt, ok := latest[test.ID]; ok {
			attempt.CalculateComputedFields()
			score, accuracy, at := attempt.Score, attempt.Accuracy, attempt.AttemptedAt
			resp.Attempted = true
			resp.LastScore = &score
			resp.LastAccuracy = &accuracy
			resp.LastAttemptedAt = &at
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *mockTestService) RecordAttempt(ctx context.Context, userID string, req *RecordAttemptRequest) (*MockAttemptResponse, error) {
	op := s.logger.WithOperation(ctx, "record_mock_attempt", userID)

	attempt, test, err := s.record(ctx, userID, req)
	if err != nil {
		op.LogResult("", err)
		return nil, err
	}
	op.LogResult(strconv.FormatUint(uint64(attempt.ID), 10), nil)

	if err := s.readiness.Invalidate(ctx, userID); err != nil {
		s.logger.Logger().Warn("Failed to invalidate readiness cache", "user_id", userID, "error", err)
	}
	if s.publisher != nil {
		event := events.NewMockAttemptRecordedEvent(userID, events.MockAttemptRecordedEvent{
			AttemptID:        attempt.ID,
			MockTestID:       attempt.MockTestID,
			CompanyTag:       attempt.CompanyTag,
			QuestionsTotal:   attempt.QuestionsTotal,
			QuestionsCorrect: attempt.QuestionsCorrect,
			Accuracy:         attempt.Accuracy,
			AttemptedAt:      attempt.AttemptedAt,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Logger().Warn("Failed to publish event", "event_type", event.Type, "user_id", userID, "error", err)
		}
	}

	return &MockAttemptResponse{MockAttempt: attempt, MockTestName: test.Name}, nil
}

func (s *mockTestService) record(ctx context.Context, userID string, req *RecordAttemptRequest) (*models.MockAttempt, readiness.MockTest, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, readiness.MockTest{}, err
	}
	test, errs := s.validator.Business().ValidateMockAttempt(req.MockTestID, req.QuestionsTotal)
	if len(errs) > 0 {
		return nil, test, errs
	}

	attemptedAt := s.now().UTC()
	if req.AttemptedAt != nil && !req.AttemptedAt.IsZero() {
		attemptedAt = req.AttemptedAt.UTC()
	}

	attempt := &models.MockAttempt{
		UserID:           userID,
		MockTestID:       req.MockTestID,
		CompanyTag:       test.Company,
		QuestionsTotal:   req.QuestionsTotal,
		QuestionsCorrect: req.QuestionsCorrect,
		DurationMinutes:  req.DurationMinutes,
		AttemptedAt:      attemptedAt,
	}
	if err := s.repo.MockAttempt().Create(ctx, nil, attempt); err != nil {
		return nil, test, fmt.Errorf("failed to record mock attempt: %w", err)
	}
	attempt.CalculateComputedFields()
	return attempt, test, nil
}

func (s *mockTestService) ListAttempts(ctx context.Context, userID string, filters repositories.MockAttemptFilters) (*MockAttemptListResponse, error) {
	filters.Limit, filters.Offset = normalizePage(filters.Limit, filters.Offset)

	attempts, total, err := s.repo.MockAttempt().List(ctx, nil, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list mock attempts: %w", err)
	}

	response := &MockAttemptListResponse{
		Attempts: make([]*MockAttemptResponse, 0, len(attempts)),
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}
	for _, attempt := range attempts {
		attempt.CalculateComputedFields()
		response.Attempts = append(response.Attempts, &MockAttemptResponse{
			MockAttempt:  attempt,
			MockTestName: s.mockTestName(attempt.MockTestID),
		})
	}
	return response, nil
}

// Summary averages the per-attempt accuracy, so a short test weighs as much as a long one.
func (s *mockTestService) Summary(ctx context.Context, userID string) (*MockTestSummary, error) {
	attempts, err := s.repo.MockAttempt().GetAllByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mock attempts: %w", err)
	}

	summary := &MockTestSummary{TestsTaken: len(attempts)}
	if len(attempts) == 0 {
		return summary, nil
	}

	distinct := make(map[string]struct{})
	var accuracySum float64
	for _, attempt := range attempts {
		attempt.CalculateComputedFields()
		distinct[attempt.MockTestID] = struct{}{}
		accuracySum += attempt.Accuracy
		if attempt.Score > summary.BestScore {
			summary.BestScore = attempt.Score
		}
	}
	summary.DistinctTests = len(distinct)
	summary.AverageAccuracy = int(math.Round(accuracySum / float64(len(attempts)) * 100))
	return summary, nil
}

func (s *mockTestService) mockTestName(id string) string {
	if test, ok := s.catalog.MockTest(id); ok {
		return test.Name
	}
	return id
}
