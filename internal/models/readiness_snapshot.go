package models

import (
	"encoding/json"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"gorm.io/datatypes"
)

// ReadinessSnapshot persists a computed ReadinessResult for history and trend views.
type ReadinessSnapshot struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       string         `json:"user_id" gorm:"not null;size:255;index:idx_snapshots_user_computed,priority:1"`
	OverallScore int            `json:"overall_score" gorm:"not null"`
	WeakAreas    datatypes.JSON `json:"weak_areas" gorm:"type:jsonb"` // []readiness.WeakArea
	TopicCount   int            `json:"topic_count"`
	ComputedAt   time.Time      `json:"computed_at" gorm:"not null;index:idx_snapshots_user_computed,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (ReadinessSnapshot) TableName() string {
	return "readiness_snapshots"
}

// NewReadinessSnapshot builds a snapshot row from a result.
func NewReadinessSnapshot(userID string, result *readiness.ReadinessResult, topicCount int) (*ReadinessSnapshot, error) {
	weakAreas, err := json.Marshal(result.WeakAreas)
	if err != nil {
		return nil, err
	}
	return &ReadinessSnapshot{
		UserID:       userID,
		OverallScore: result.OverallScore,
		WeakAreas:    datatypes.JSON(weakAreas),
		TopicCount:   topicCount,
		ComputedAt:   result.ComputedAt.UTC(),
	}, nil
}

// Result decodes the snapshot back into a ReadinessResult.
func (s *ReadinessSnapshot) Result() (*readiness.ReadinessResult, error) {
	result := &readiness.ReadinessResult{
		OverallScore: s.OverallScore,
		WeakAreas:    []readiness.WeakArea{},
		ComputedAt:   s.ComputedAt.UTC(),
	}
	if len(s.WeakAreas) > 0 {
		if err := json.Unmarshal(s.WeakAreas, &result.WeakAreas); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// WeakTopicIDs returns the topic ids of the stored weak areas in rank order.
func (s *ReadinessSnapshot) WeakTopicIDs() []string {
	result, err := s.Result()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(result.WeakAreas))
	for _, w := range result.WeakAreas {
		ids = append(ids, w.TopicID)
	}
	return ids
}
