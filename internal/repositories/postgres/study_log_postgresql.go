package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"gorm.io/gorm"
)

var studyLogSortColumns = map[string]bool{
	"studied_at":        true,
	"duration_minutes":  true,
	"confidence_rating": true,
	"created_at":        true,
}

type StudyLogPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewStudyLogPostgreSQL(db *gorm.DB) repositories.StudyLogRepository {
	return &StudyLogPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (s *StudyLogPostgreSQL) Create(ctx context.Context, tx *gorm.DB, log *models.StudyLog) error {
	return s.helpers.GetDB(tx).WithContext(ctx).Create(log).Error
}

func (s *StudyLogPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudyLog, error) {
	var log models.StudyLog
	if err := s.helpers.GetDB(tx).WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *StudyLogPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := s.helpers.GetDB(tx).WithContext(ctx).Delete(&models.StudyLog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *StudyLogPostgreSQL) List(ctx context.Context, tx *gorm.DB, userID string, filters repositories.StudyLogFilters) ([]*models.StudyLog, int64, error) {
	var logs []*models.StudyLog
	var total int64

	// apply filter first
	query := s.helpers.GetDB(tx).WithContext(ctx).Model(&models.StudyLog{}).Where("user_id = ?", userID)
	query = s.helpers.ApplyStudyLogFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset,
		studyLogSortColumns, "studied_at")

	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *StudyLogPostgreSQL) GetAllByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.StudyLog, error) {
	var logs []*models.StudyLog
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("studied_at ASC").Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *StudyLogPostgreSQL) GetRecent(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*models.StudyLog, error) {
	var logs []*models.StudyLog
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("studied_at DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *StudyLogPostgreSQL) GetByDateRange(ctx context.Context, tx *gorm.DB, userID string, from, to time.Time) ([]*models.StudyLog, error) {
	var logs []*models.StudyLog
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ? AND studied_at >= ? AND studied_at < ?", userID, from, to).
		Order("studied_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *StudyLogPostgreSQL) GetTotals(ctx context.Context, tx *gorm.DB, userID string) (*repositories.StudyTotals, error) {
	var totals repositories.StudyTotals
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.StudyLog{}).
		Select("COALESCE(SUM(duration_minutes), 0) AS total_minutes, COUNT(*) AS total_sessions, COUNT(DISTINCT topic_id) AS topics_covered").
		Where("user_id = ?", userID).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

func (s *StudyLogPostgreSQL) GetCategoryMinutes(ctx context.Context, tx *gorm.DB, userID string) ([]repositories.CategoryMinutes, error) {
	var rows []repositories.CategoryMinutes
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.StudyLog{}).
		Select("category, SUM(duration_minutes) AS minutes").
		Where("user_id = ?", userID).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *StudyLogPostgreSQL) GetTopicConfidence(ctx context.Context, tx *gorm.DB, userID string) ([]repositories.TopicConfidence, error) {
	var rows []repositories.TopicConfidence
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.StudyLog{}).
		Select("topic_id, AVG(confidence_rating) AS average_confidence, COUNT(*) AS sessions").
		Where("user_id = ?", userID).
		Group("topic_id").
		Order("topic_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
