package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository interface for user profile operations
type ProfileRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.UserProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error
	MarkOnboarded(ctx context.Context, tx *gorm.DB, id string, at time.Time) error
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string, excludeID string) (bool, error)
}

// SnapshotRepository interface for persisted readiness results
type SnapshotRepository interface {
	Create(ctx context.Context, tx *gorm.DB, snapshot *models.ReadinessSnapshot) error
	GetLatest(ctx context.Context, tx *gorm.DB, userID string) (*models.ReadinessSnapshot, error)
	GetLatestBefore(ctx context.Context, tx *gorm.DB, userID string, before time.Time) (*models.ReadinessSnapshot, error)
	GetHistory(ctx context.Context, tx *gorm.DB, userID string, since time.Time) ([]*models.ReadinessSnapshot, error) // oldest first
}
