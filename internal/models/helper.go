package models

import "time"

// AllModels lists the tables created at start-up.
func AllModels() []interface{} {
	return []interface{}{
		&UserProfile{},
		&StudyLog{},
		&MockAttempt{},
		&ReadinessSnapshot{},
	}
}

type ExportRequest struct {
	Format   string     `json:"format" validate:"omitempty,oneof=xlsx"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
}
