package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "readiness-service"
	eventVersion = "1.0"
)

// EventType represents the kinds of events the service emits
type EventType string

const (
	// Activity events
	EventStudyLogged         EventType = "study.logged"
	EventStudyLogDeleted     EventType = "study.deleted"
	EventMockAttemptRecorded EventType = "mock.attempt_recorded"
	EventProfileOnboarded    EventType = "profile.onboarded"

	// Readiness events
	EventReadinessComputed EventType = "readiness.computed"
	EventWeakAreasChanged  EventType = "readiness.weak_areas_changed"
)

// ReadinessEvent is the envelope for every published event
type ReadinessEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	UserID    string                 `json:"user_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Activity event payloads

type StudyLoggedEvent struct {
	StudyLogID       uint      `json:"study_log_id"`
	TopicID          string    `json:"topic_id"`
	Category         string    `json:"category"`
	DurationMinutes  int       `json:"duration_minutes"`
	ConfidenceRating int       `json:"confidence_rating"`
	StudiedAt        time.Time `json:"studied_at"`
}

type StudyLogDeletedEvent struct {
	StudyLogID uint   `json:"study_log_id"`
	TopicID    string `json:"topic_id"`
}

type MockAttemptRecordedEvent struct {
	AttemptID        uint      `json:"attempt_id"`
	MockTestID       string    `json:"mock_test_id"`
	CompanyTag       string    `json:"company_tag"`
	QuestionsTotal   int       `json:"questions_total"`
	QuestionsCorrect int       `json:"questions_correct"`
	Accuracy         float64   `json:"accuracy"`
	AttemptedAt      time.Time `json:"attempted_at"`
}

type ProfileOnboardedEvent struct {
	TargetCompanies []string  `json:"target_companies"`
	GraduationYear  int       `json:"graduation_year"`
	OnboardedAt     time.Time `json:"onboarded_at"`
}

// Readiness event payloads

type WeakAreaPayload struct {
	TopicID   string `json:"topic_id"`
	Score     int    `json:"score"`
	Category  string `json:"category"`
	Unstarted bool   `json:"unstarted"`
}

type ReadinessComputedEvent struct {
	OverallScore   int               `json:"overall_score"`
	PreviousScore  *int              `json:"previous_score,omitempty"`
	WeakAreas      []WeakAreaPayload `json:"weak_areas"`
	RejectedEvents int               `json:"rejected_events"`
	ComputedAt     time.Time         `json:"computed_at"`
}

type WeakAreasChangedEvent struct {
	Previous   []string          `json:"previous"`
	Current    []WeakAreaPayload `json:"current"`
	ComputedAt time.Time         `json:"computed_at"`
}

// Event factory functions

func newEvent(eventType EventType, userID string, data interface{}) *ReadinessEvent {
	return &ReadinessEvent{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		UserID:    userID,
		Data:      data,
	}
}

func NewStudyLoggedEvent(userID string, data StudyLoggedEvent) *ReadinessEvent {
	return newEvent(EventStudyLogged, userID, data)
}

func NewStudyLogDeletedEvent(userID string, studyLogID uint, topicID string) *ReadinessEvent {
	return newEvent(EventStudyLogDeleted, userID, StudyLogDeletedEvent{StudyLogID: studyLogID, TopicID: topicID})
}

func NewMockAttemptRecordedEvent(userID string, data MockAttemptRecordedEvent) *ReadinessEvent {
	return newEvent(EventMockAttemptRecorded, userID, data)
}

func NewProfileOnboardedEvent(userID string, companies []string, graduationYear int, at time.Time) *ReadinessEvent {
	return newEvent(EventProfileOnboarded, userID, ProfileOnboardedEvent{
		TargetCompanies: companies,
		GraduationYear:  graduationYear,
		OnboardedAt:     at,
	})
}

func NewReadinessComputedEvent(userID string, data ReadinessComputedEvent) *ReadinessEvent {
	return newEvent(EventReadinessComputed, userID, data)
}

func NewWeakAreasChangedEvent(userID string, previous []string, current []WeakAreaPayload, computedAt time.Time) *ReadinessEvent {
	return newEvent(EventWeakAreasChanged, userID, WeakAreasChangedEvent{
		Previous:   previous,
		Current:    current,
		ComputedAt: computedAt,
	})
}

func generateEventID() string {
	return uuid.NewString()
}
