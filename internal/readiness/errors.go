package readiness

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEvent  = errors.New("invalid event")
	ErrInvalidConfig = errors.New("invalid scoring config")
)

// EventKind names the record type an InvalidEventError refers to.
type EventKind string

const (
	EventKindSession EventKind = "study_session"
	EventKindAttempt EventKind = "mock_attempt"
)

// InvalidEventError describes one malformed input record. The record is
// excluded from aggregation and the pass continues.
type InvalidEventError struct {
	Kind   EventKind `json:"kind"`
	Index  int       `json:"index"`
	Field  string    `json:"field,omitempty"`
	Reason string    `json:"reason"`
}

func (e *InvalidEventError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s at index %d: %s", e.Kind, e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid %s at index %d: %s %s", e.Kind, e.Index, e.Field, e.Reason)
}

func (e *InvalidEventError) Unwrap() error {
	return ErrInvalidEvent
}

// InvalidConfigError is returned before any scoring when ScoringWeights is malformed.
type InvalidConfigError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid scoring config: %s %s", e.Field, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// IsInvalidConfig reports whether err is an InvalidConfigError.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
