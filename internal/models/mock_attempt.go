package models

import (
	"math"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/readiness"
)

// MockAttempt is one recorded attempt at a catalog mock test.
type MockAttempt struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"not null;size:255;index:idx_mock_attempts_user_attempted,priority:1"`
	MockTestID       string    `json:"mock_test_id" gorm:"not null;size:100;index"`
	CompanyTag       string    `json:"company_tag" gorm:"size:100"`
	QuestionsTotal   int       `json:"questions_total" gorm:"not null"`
	QuestionsCorrect int       `json:"questions_correct" gorm:"not null"`
	DurationMinutes  int       `json:"duration_minutes" gorm:"not null"`
	AttemptedAt      time.Time `json:"attempted_at" gorm:"not null;index:idx_mock_attempts_user_attempted,priority:2"`

	// Computed fields
	Accuracy float64 `json:"accuracy" gorm:"-"`
	Score    int     `json:"score" gorm:"-"` // percentage

	CreatedAt time.Time `json:"created_at"`
}

func (MockAttempt) TableName() string {
	return "mock_attempts"
}

// CalculateComputedFields fills Accuracy and Score.
func (a *MockAttempt) CalculateComputedFields() {
	if a.QuestionsTotal <= 0 {
		return
	}
	a.Accuracy = float64(a.QuestionsCorrect) / float64(a.QuestionsTotal)
	a.Score = int(math.Round(a.Accuracy * 100))
}

// ToAttempt converts the row into an engine event.
func (a *MockAttempt) ToAttempt() readiness.MockAttempt {
	return readiness.MockAttempt{
		MockTestID:       a.MockTestID,
		CompanyTag:       a.CompanyTag,
		Timestamp:        a.AttemptedAt.UTC(),
		QuestionsTotal:   a.QuestionsTotal,
		QuestionsCorrect: a.QuestionsCorrect,
		DurationMinutes:  a.DurationMinutes,
	}
}
