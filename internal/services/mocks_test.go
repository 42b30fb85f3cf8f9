package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockStudyLogRepository is a mock implementation of StudyLogRepository
type MockStudyLogRepository struct {
	mock.Mock
}

func (m *MockStudyLogRepository) Create(ctx context.Context, tx *gorm.DB, log *models.StudyLog) error {
	args := m.Called(ctx, tx, log)
	return args.Error(0)
}

func (m *MockStudyLogRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudyLog, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.StudyLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudyLogRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockStudyLogRepository) List(ctx context.Context, tx *gorm.DB, userID string, filters repositories.StudyLogFilters) ([]*models.StudyLog, int64, error) {
	args := m.Called(ctx, tx, userID, filters)
	return args.Get(0).([]*models.StudyLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudyLogRepository) GetAllByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.StudyLog, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).([]*models.StudyLog), args.Error(1)
}

func (m *MockStudyLogRepository) GetRecent(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*models.StudyLog, error) {
	args := m.Called(ctx, tx, userID, limit)
	return args.Get(0).([]*models.StudyLog), args.Error(1)
}

func (m *MockStudyLogRepository) GetByDateRange(ctx context.Context, tx *gorm.DB, userID string, from, to time.Time) ([]*models.StudyLog, error) {
	args := m.Called(ctx, tx, userID, from, to)
	return args.Get(0).([]*models.StudyLog), args.Error(1)
}

func (m *MockStudyLogRepository) GetTotals(ctx context.Context, tx *gorm.DB, userID string) (*repositories.StudyTotals, error) {
	args := m.Called(ctx, tx, userID)
	if v := args.Get(0); v != nil {
		return v.(*repositories.StudyTotals), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudyLogRepository) GetCategoryMinutes(ctx context.Context, tx *gorm.DB, userID string) ([]repositories.CategoryMinutes, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).([]repositories.CategoryMinutes), args.Error(1)
}

func (m *MockStudyLogRepository) GetTopicConfidence(ctx context.Context, tx *gorm.DB, userID string) ([]repositories.TopicConfidence, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).([]repositories.TopicConfidence), args.Error(1)
}

// MockMockAttemptRepository is a mock implementation of MockAttemptRepository
type MockMockAttemptRepository struct {
	mock.Mock
}

func (m *MockMockAttemptRepository) Create(ctx context.Context, tx *gorm.DB, attempt *models.MockAttempt) error {
	args := m.Called(ctx, tx, attempt)
	return args.Error(0)
}

func (m *MockMockAttemptRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MockAttempt, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.MockAttempt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMockAttemptRepository) List(ctx context.Context, tx *gorm.DB, userID string, filters repositories.MockAttemptFilters) ([]*models.MockAttempt, int64, error) {
	args := m.Called(ctx, tx, userID, filters)
	return args.Get(0).([]*models.MockAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockMockAttemptRepository) GetAllByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.MockAttempt, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).([]*models.MockAttempt), args.Error(1)
}

func (m *MockMockAttemptRepository) GetLatestByTest(ctx context.Context, tx *gorm.DB, userID string) (map[string]*models.MockAttempt, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(map[string]*models.MockAttempt), args.Error(1)
}

func (m *MockMockAttemptRepository) GetAttemptCount(ctx context.Context, tx *gorm.DB, userID string) (int, error) {
	args := m.Called(ctx, tx, userID)
	return args.Int(0), args.Error(1)
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.UserProfile, error) {
	args := m.Called(ctx, tx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	args := m.Called(ctx, tx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) MarkOnboarded(ctx context.Context, tx *gorm.DB, id string, at time.Time) error {
	args := m.Called(ctx, tx, id, at)
	return args.Error(0)
}

func (m *MockProfileRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string, excludeID string) (bool, error) {
	args := m.Called(ctx, tx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Create(ctx context.Context, tx *gorm.DB, snapshot *models.ReadinessSnapshot) error {
	args := m.Called(ctx, tx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetLatest(ctx context.Context, tx *gorm.DB, userID string) (*models.ReadinessSnapshot, error) {
	args := m.Called(ctx, tx, userID)
	if v := args.Get(0); v != nil {
		return v.(*models.ReadinessSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSnapshotRepository) GetLatestBefore(ctx context.Context, tx *gorm.DB, userID string, before time.Time) (*models.ReadinessSnapshot, error) {
	args := m.Called(ctx, tx, userID, before)
	if v := args.Get(0); v != nil {
		return v.(*models.ReadinessSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSnapshotRepository) GetHistory(ctx context.Context, tx *gorm.DB, userID string, since time.Time) ([]*models.ReadinessSnapshot, error) {
	args := m.Called(ctx, tx, userID, since)
	return args.Get(0).([]*models.ReadinessSnapshot), args.Error(1)
}

// MockRepository is a mock implementation of the main Repository interface
type MockRepository struct {
	mock.Mock
	studyLogRepo    *MockStudyLogRepository
	mockAttemptRepo *MockMockAttemptRepository
	profileRepo     *MockProfileRepository
	snapshotRepo    *MockSnapshotRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		studyLogRepo:    &MockStudyLogRepository{},
		mockAttemptRepo: &MockMockAttemptRepository{},
		profileRepo:     &MockProfileRepository{},
		snapshotRepo:    &MockSnapshotRepository{},
	}
}

func (m *MockRepository) StudyLog() repositories.StudyLogRepository       { return m.studyLogRepo }
func (m *MockRepository) MockAttempt() repositories.MockAttemptRepository { return m.mockAttemptRepo }
func (m *MockRepository) Profile() repositories.ProfileRepository         { return m.profileRepo }
func (m *MockRepository) Snapshot() repositories.SnapshotRepository       { return m.snapshotRepo }

// WithTransaction runs fn against the same mocks.
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.studyLogRepo.AssertExpectations(t)
	m.mockAttemptRepo.AssertExpectations(t)
	m.profileRepo.AssertExpectations(t)
	m.snapshotRepo.AssertExpectations(t)
}

// MockReadinessService records invalidations made by the write services
type MockReadinessService struct {
	mock.Mock
}

func (m *MockReadinessService) Compute(ctx context.Context, userID string) (*ReadinessResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*ReadinessResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReadinessService) Get(ctx context.Context, userID string) (*ReadinessResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*ReadinessResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReadinessService) Breakdown(ctx context.Context, userID string) (*ReadinessBreakdown, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*ReadinessBreakdown), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReadinessService) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
