package postgres

import (
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SharedHelpers holds query helpers used by every table repository.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// GetDB returns tx when set, otherwise the base connection.
func (h *SharedHelpers) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return h.db
}

// ApplyPaginationAndSort orders by sortBy when it is one of allowed, otherwise by fallback.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int, allowed map[string]bool, fallback string) *gorm.DB {
	column := fallback
	if allowed[sortBy] {
		column = sortBy
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction).Order("id " + direction)

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}

func (h *SharedHelpers) ApplyStudyLogFilters(query *gorm.DB, filters repositories.StudyLogFilters) *gorm.DB {
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.TopicID != nil {
		query = query.Where("topic_id = ?", *filters.TopicID)
	}
	return applyDateRange(query, "studied_at", filters.DateFrom, filters.DateTo)
}

func (h *SharedHelpers) ApplyMockAttemptFilters(query *gorm.DB, filters repositories.MockAttemptFilters) *gorm.DB {
	if filters.MockTestID != nil {
		query = query.Where("mock_test_id = ?", *filters.MockTestID)
	}
	if filters.CompanyTag != nil {
		query = query.Where("company_tag = ?", *filters.CompanyTag)
	}
	return applyDateRange(query, "attempted_at", filters.DateFrom, filters.DateTo)
}

func applyDateRange(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", *from)
	}
	if to != nil {
		query = query.Where(column+" < ?", to.Add(24*time.Hour))
	}
	return query
}
