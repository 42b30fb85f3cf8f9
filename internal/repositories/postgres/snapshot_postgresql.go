package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"gorm.io/gorm"
)

type SnapshotPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSnapshotPostgreSQL(db *gorm.DB) repositories.SnapshotRepository {
	return &SnapshotPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (s *SnapshotPostgreSQL) Create(ctx context.Context, tx *gorm.DB, snapshot *models.ReadinessSnapshot) error {
	return s.helpers.GetDB(tx).WithContext(ctx).Create(snapshot).Error
}

func (s *SnapshotPostgreSQL) GetLatest(ctx context.Context, tx *gorm.DB, userID string) (*models.ReadinessSnapshot, error) {
	var snapshot models.ReadinessSnapshot
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("computed_at DESC").Order("id DESC").
		First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *SnapshotPostgreSQL) GetLatestBefore(ctx context.Context, tx *gorm.DB, userID string, before time.Time) (*models.ReadinessSnapshot, error) {
	var snapshot models.ReadinessSnapshot
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ? AND computed_at < ?", userID, before).
		Order("computed_at DESC").Order("id DESC").
		First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *SnapshotPostgreSQL) GetHistory(ctx context.Context, tx *gorm.DB, userID string, since time.Time) ([]*models.ReadinessSnapshot, error) {
	var snapshots []*models.ReadinessSnapshot
	if err := s.helpers.GetDB(tx).WithContext(ctx).
		Where("user_id = ? AND computed_at >= ?", userID, since).
		Order("computed_at ASC").Order("id ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
