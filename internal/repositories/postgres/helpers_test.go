package postgres

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestSharedHelpers_ApplyPaginationAndSort(t *testing.T) {
	db := newDryRunDB(t)
	helpers := NewSharedHelpers(db)

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		limit     int
		wantOrder string
		wantLimit int
	}{
		{"defaults", "", "", 0, "ORDER BY studied_at DESC,id DESC", 20},
		{"allowed column ascending", "duration_minutes", "asc", 5, "ORDER BY duration_minutes ASC,id ASC", 5},
		{"unknown column falls back", "password; DROP TABLE", "desc", 500, "ORDER BY studied_at DESC,id DESC", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs []*models.StudyLog
			query := db.Model(&models.StudyLog{})
			query = helpers.ApplyPaginationAndSort(query, tt.sortBy, tt.sortOrder, tt.limit, 0, studyLogSortColumns, "studied_at")
			stmt := query.Find(&logs).Statement

			sql := stmt.SQL.String()
			assert.Contains(t, sql, tt.wantOrder)
			assert.Contains(t, sql, "LIMIT $1")
			require.NotEmpty(t, stmt.Vars)
			assert.Equal(t, tt.wantLimit, stmt.Vars[len(stmt.Vars)-1])
		})
	}
}

func TestSharedHelpers_ApplyStudyLogFilters(t *testing.T) {
	db := newDryRunDB(t)
	helpers := NewSharedHelpers(db)

	category := models.CategoryDSA
	topic := "arrays"
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	var logs []*models.StudyLog
	query := helpers.ApplyStudyLogFilters(db.Model(&models.StudyLog{}), repositories.StudyLogFilters{
		Category: &category,
		TopicID:  &topic,
		DateFrom: &from,
		DateTo:   &to,
	})
	stmt := query.Find(&logs).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "category = $1")
	assert.Contains(t, sql, "topic_id = $2")
	assert.Contains(t, sql, "studied_at >= $3")
	assert.Contains(t, sql, "studied_at < $4")
	require.Len(t, stmt.Vars, 4)
	assert.Equal(t, to.Add(24*time.Hour), stmt.Vars[3])
}
