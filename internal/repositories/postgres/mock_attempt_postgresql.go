package postgres

import (
	"context"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"gorm.io/gorm"
)

var mockAttemptSortColumns = map[string]bool{
	"attempted_at":      true,
	"questions_correct": true,
	"created_at":        true,
}

type MockAttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewMockAttemptPostgreSQL(db *gorm.DB) repositories.MockAttemptRepository {
	return &MockAttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (m *MockAttemptPostgreSQL) Create(ctx context.Context, tx *gorm.DB, attempt *models.MockAttempt) error {
	if err := m.helpers.GetDB(tx).WithContext(ctx).Create(attempt).Error; err != nil {
		return err
	}
	attempt.CalculateComputedFields()
	return nil
}

func (m *MockAttemptPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MockAttempt, error) {
	var attempt models.MockAttempt
	if err := m.helpers.GetDB(tx).WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	attempt.CalculateComputedFields()
	return &attempt, nil
}

func (m *MockAttemptPostgreSQL) List(ctx context.Context, tx *gorm.DB, userID string, filters repositories.MockAttemptFilters) ([]*models.MockAttempt, int64, error) {
	var attempts []*models.MockAttempt
	var total int64

	query := m.helpers.GetDB(tx).WithContext(ctx).Model(&models.MockAttempt{}).Where("user_id = ?", userID)
	query = m.helpers.ApplyMockAttemptFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = m.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset,
		mockAttemptSortColumns, "attempted_at")

	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, err
	}
	for _, a := range attempts {
		a.CalculateComputedFields()
	}
	return attempts, total, nil
}

func (m *MockAttemptPostgreSQL) GetAllByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.MockAttempt, error) {
	var attempts []*models.MockAttempt
	if err := m.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attempted_at ASC").Order("id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	for _, a := range attempts {
		a.CalculateComputedFields()
	}
	return attempts, nil
}

// GetLatestByTest returns the most recent attempt per mock test.
func (m *MockAttemptPostgreSQL) GetLatestByTest(ctx context.Context, tx *gorm.DB, userID string) (map[string]*models.MockAttempt, error) {
	var attempts []*models.MockAttempt
	if err := m.helpers.GetDB(tx).WithContext(ctx).
		Raw(`SELECT DISTINCT ON (mock_test_id) * FROM mock_attempts
			WHERE user_id = ?
			ORDER BY mock_test_id, attempted_at DESC, id DESC`, userID).
		Scan(&attempts).Error; err != nil {
		return nil, err
	}

	latest := make(map[string]*models.MockAttempt, len(attempts))
	for _, a := range attempts {
		a.CalculateComputedFields()
		latest[a.MockTestID] = a
	}
	return latest, nil
}

func (m *MockAttemptPostgreSQL) GetAttemptCount(ctx context.Context, tx *gorm.DB, userID string) (int, error) {
	var count int64
	if err := m.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.MockAttempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
