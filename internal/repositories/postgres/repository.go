package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	studyLog    repositories.StudyLogRepository
	mockAttempt repositories.MockAttemptRepository
	profile     repositories.ProfileRepository
	snapshot    repositories.SnapshotRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:          db,
		studyLog:    NewStudyLogPostgreSQL(db),
		mockAttempt: NewMockAttemptPostgreSQL(db),
		profile:     NewProfilePostgreSQL(db),
		snapshot:    NewSnapshotPostgreSQL(db),
	}
}

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (r *Repository) StudyLog() repositories.StudyLogRepository       { return r.studyLog }
func (r *Repository) MockAttempt() repositories.MockAttemptRepository { return r.mockAttempt }
func (r *Repository) Profile() repositories.ProfileRepository         { return r.profile }
func (r *Repository) Snapshot() repositories.SnapshotRepository       { return r.snapshot }

func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
