package models

import (
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/readiness"
)

type TopicCategory string

const (
	CategoryDSA      TopicCategory = "DSA"
	CategoryAptitude TopicCategory = "Aptitude"
	CategoryCore     TopicCategory = "Core"
	CategoryEnglish  TopicCategory = "English"
)

// StudyLog is one recorded study session. Rows are never updated.
type StudyLog struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	UserID           string        `json:"user_id" gorm:"not null;size:255;index:idx_study_logs_user_studied,priority:1"`
	TopicID          string        `json:"topic_id" gorm:"not null;size:100;index"`
	Category         TopicCategory `json:"category" gorm:"not null;size:20"`
	DurationMinutes  int           `json:"duration_minutes" gorm:"not null"`
	ConfidenceRating int           `json:"confidence_rating" gorm:"not null"`
	Notes            *string       `json:"notes" gorm:"type:text"`
	StudiedAt        time.Time     `json:"studied_at" gorm:"not null;index:idx_study_logs_user_studied,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (StudyLog) TableName() string {
	return "study_logs"
}

// ToSession converts the row into an engine event.
func (l *StudyLog) ToSession() readiness.StudySession {
	return readiness.StudySession{
		TopicID:          l.TopicID,
		CategoryID:       string(l.Category),
		Timestamp:        l.StudiedAt.UTC(),
		DurationMinutes:  l.DurationMinutes,
		ConfidenceRating: l.ConfidenceRating,
	}
}
