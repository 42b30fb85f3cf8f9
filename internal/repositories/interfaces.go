package repositories

import (
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudyLogFilters struct {
	Category  *models.TopicCategory `json:"category" form:"category"`
	TopicID   *string               `json:"topic_id" form:"topic_id"`
	DateFrom  *time.Time            `json:"date_from" form:"date_from" time_format:"2006-01-02"`
	DateTo    *time.Time            `json:"date_to" form:"date_to" time_format:"2006-01-02"`
	Limit     int                   `json:"limit" form:"limit"`
	Offset    int                   `json:"offset" form:"offset"`
	SortBy    string                `json:"sort_by" form:"sort_by"`       // "studied_at", "duration_minutes", "confidence_rating"
	SortOrder string                `json:"sort_order" form:"sort_order"` // "asc", "desc"
}

type MockAttemptFilters struct {
	MockTestID *string    `json:"mock_test_id" form:"mock_test_id"`
	CompanyTag *string    `json:"company_tag" form:"company"`
	DateFrom   *time.Time `json:"date_from" form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `json:"date_to" form:"date_to" time_format:"2006-01-02"`
	Limit      int        `json:"limit" form:"limit"`
	Offset     int        `json:"offset" form:"offset"`
	SortBy     string     `json:"sort_by" form:"sort_by"` // "attempted_at", "questions_correct"
	SortOrder  string     `json:"sort_order" form:"sort_order"`
}

// ===== SHARED STATISTICS STRUCTS =====

type StudyTotals struct {
	TotalMinutes  int `json:"total_minutes"`
	TotalSessions int `json:"total_sessions"`
	TopicsCovered int `json:"topics_covered"`
}

type DailyMinutes struct {
	Date     time.Time `json:"date"`
	Minutes  int       `json:"minutes"`
	Sessions int       `json:"sessions"`
}

type CategoryMinutes struct {
	Category models.TopicCategory `json:"category"`
	Minutes  int                  `json:"minutes"`
}

type TopicConfidence struct {
	TopicID           string  `json:"topic_id"`
	AverageConfidence float64 `json:"average_confidence"`
	Sessions          int     `json:"sessions"`
}
