package repositories

import (
	"context"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"gorm.io/gorm"
)

// MockAttemptRepository interface for mock test attempt operations
type MockAttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.MockAttempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MockAttempt, error)

	// Query operations
	List(ctx context.Context, tx *gorm.DB, userID string, filters MockAttemptFilters) ([]*models.MockAttempt, int64, error)
	GetAllByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.MockAttempt, error) // oldest first
	GetLatestByTest(ctx context.Context, tx *gorm.DB, userID string) (map[string]*models.MockAttempt, error)
	GetAttemptCount(ctx context.Context, tx *gorm.DB, userID string) (int, error)
}
