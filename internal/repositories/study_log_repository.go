package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"gorm.io/gorm"
)

// StudyLogRepository interface for study session operations
type StudyLogRepository interface {
	// Basic operations. Study logs are append-only.
	Create(ctx context.Context, tx *gorm.DB, log *models.StudyLog) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudyLog, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, userID string, filters StudyLogFilters) ([]*models.StudyLog, int64, error)
	GetAllByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.StudyLog, error) // oldest first
	GetRecent(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*models.StudyLog, error)
	GetByDateRange(ctx context.Context, tx *gorm.DB, userID string, from, to time.Time) ([]*models.StudyLog, error)

	// Statistics
	GetTotals(ctx context.Context, tx *gorm.DB, userID string) (*StudyTotals, error)
	GetCategoryMinutes(ctx context.Context, tx *gorm.DB, userID string) ([]CategoryMinutes, error)
	GetTopicConfidence(ctx context.Context, tx *gorm.DB, userID string) ([]TopicConfidence, error)
}
