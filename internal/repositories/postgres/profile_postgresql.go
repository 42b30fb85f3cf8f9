package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfilePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (p *ProfilePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := p.helpers.GetDB(tx).WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts the profile or updates its editable columns.
func (p *ProfilePostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	return p.helpers.GetDB(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "email", "graduation_year", "branch", "target_companies", "weekly_goal_minutes", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (p *ProfilePostgreSQL) MarkOnboarded(ctx context.Context, tx *gorm.DB, id string, at time.Time) error {
	result := p.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ?", id).
		Update("onboarded_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *ProfilePostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string, excludeID string) (bool, error) {
	var count int64
	query := p.helpers.GetDB(tx).WithContext(ctx).Model(&models.UserProfile{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
