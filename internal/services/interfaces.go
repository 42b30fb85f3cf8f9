package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

type ReadinessService interface {
	// Compute rebuilds the result from the full event history and persists a snapshot.
	Compute(ctx context.Context, userID string) (*ReadinessResponse, error)
	// Get returns the cached result when present, otherwise computes it.
	Get(ctx context.Context, userID string) (*ReadinessResponse, error)
	Breakdown(ctx context.Context, userID string) (*ReadinessBreakdown, error)
	Invalidate(ctx context.Context, userID string) error
}

type StudyLogService interface {
	Create(ctx context.Context, userID string, req *CreateStudyLogRequest) (*StudyLogResponse, error)
	List(ctx context.Context, userID string, filters repositories.StudyLogFilters) (*StudyLogListResponse, error)
	Delete(ctx context.Context, userID string, id uint) error
}

type MockTestService interface {
	ListTests(ctx context.Context, userID string, company string) ([]*MockTestResponse, error)
	RecordAttempt(ctx context.Context, userID string, req *RecordAttemptRequest) (*MockAttemptResponse, error)
	ListAttempts(ctx context.Context, userID string, filters repositories.MockAttemptFilters) (*MockAttemptListResponse, error)
	Summary(ctx context.Context, userID string) (*MockTestSummary, error)
}

type ProgressService interface {
	Dashboard(ctx context.Context, userID string) (*DashboardResponse, error)
	Progress(ctx context.Context, userID string) (*ProgressResponse, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, userID string, req *UpsertProfileRequest) (*models.UserProfile, error)
	CompleteOnboarding(ctx context.Context, userID string) (*models.UserProfile, error)
}

type ExportService interface {
	ExportProgress(ctx context.Context, userID string, req *models.ExportRequest) ([]byte, error)
}

// ===== READINESS DTOs =====

type WeakAreaResponse struct {
	readiness.WeakArea
	TopicName string `json:"topic_name"`
}

type ReadinessResponse struct {
	OverallScore   int                `json:"overall_score"`
	WeakAreas      []WeakAreaResponse `json:"weak_areas"`
	ComputedAt     time.Time          `json:"computed_at"`
	RejectedEvents int                `json:"rejected_events"`
}

type TopicBreakdown struct {
	readiness.TopicScore
	TopicName            string `json:"topic_name"`
	TotalMinutes         int    `json:"total_minutes"`
	SessionCount         int    `json:"session_count"`
	AttemptCount         int    `json:"attempt_count"`
	DaysSinceLastStudied *int   `json:"days_since_last_studied"`
}

type ReadinessBreakdown struct {
	OverallScore int                      `json:"overall_score"`
	Weights      readiness.ScoringWeights `json:"weights"`
	Topics       []TopicBreakdown         `json:"topics"`
	ComputedAt   time.Time                `json:"computed_at"`
}

// ===== STUDY LOG DTOs =====

type CreateStudyLogRequest struct {
	TopicID          string               `json:"topic_id" validate:"required,max=100"`
	Category         models.TopicCategory `json:"category" validate:"required,topic_category"`
	DurationMinutes  int                  `json:"duration_minutes" validate:"required,gt=0"`
	ConfidenceRating int                  `json:"confidence_rating" validate:"required,confidence_rating"`
	Notes            *string              `json:"notes" validate:"omitempty,max=1000"`
	StudiedAt        *time.Time           `json:"studied_at" validate:"omitempty,not_future"`
}

type StudyLogResponse struct {
	*models.StudyLog
	TopicName string `json:"topic_name"`
}

type StudyLogListResponse struct {
	Logs   []*StudyLogResponse `json:"logs"`
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// ===== MOCK TEST DTOs =====

type RecordAttemptRequest struct {
	MockTestID       string     `json:"mock_test_id" validate:"required,max=100"`
	QuestionsTotal   int        `json:"questions_total" validate:"required,gt=0"`
	QuestionsCorrect int        `json:"questions_correct" validate:"gte=0,ltefield=QuestionsTotal"`
	DurationMinutes  int        `json:"duration_minutes" validate:"required,gt=0"`
	AttemptedAt      *time.Time `json:"attempted_at" validate:"omitempty,not_future"`
}

type MockTestResponse struct {
	readiness.MockTest
	Attempted       bool       `json:"attempted"`
	LastScore       *int       `json:"last_score,omitempty"`
	LastAccuracy    *float64   `json:"last_accuracy,omitempty"`
	LastAttemptedAt *time.Time `json:"last_attempted_at,omitempty"`
}

type MockAttemptResponse struct {
	*models.MockAttempt
	MockTestName string `json:"mock_test_name"`
}

type MockAttemptListResponse struct {
	Attempts []*MockAttemptResponse `json:"attempts"`
	Total    int64                  `json:"total"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
}

type MockTestSummary struct {
	TestsTaken      int `json:"tests_taken"`
	DistinctTests   int `json:"distinct_tests"`
	AverageAccuracy int `json:"average_accuracy"` // percentage
	BestScore       int `json:"best_score"`       // percentage
}

// ===== PROGRESS DTOs =====

type PlanItem struct {
	TopicID   string `json:"topic_id"`
	TopicName string `json:"topic_name"`
	Category  string `json:"category"`
	Minutes   int    `json:"minutes"`
	Reason    string `json:"reason"`
}

type DashboardResponse struct {
	ReadinessScore    int                 `json:"readiness_score"`
	ScoreChange       *int                `json:"score_change,omitempty"` // vs the snapshot from a week ago
	StreakDays        int                 `json:"streak_days"`
	TodayMinutes      int                 `json:"today_minutes"`
	WeeklyMinutes     int                 `json:"weekly_minutes"`
	WeeklyGoalMinutes int                 `json:"weekly_goal_minutes"`
	WeakAreas         []WeakAreaResponse  `json:"weak_areas"`
	DailyPlan         []PlanItem          `json:"daily_plan"`
	RecentActivity    []*StudyLogResponse `json:"recent_activity"`
	ComputedAt        time.Time           `json:"computed_at"`
}

type DayActivity struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Weekday  string `json:"weekday"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

type CategoryShare struct {
	Category   models.TopicCategory `json:"category"`
	Minutes    int                  `json:"minutes"`
	Hours      float64              `json:"hours"`
	Percentage int                  `json:"percentage"`
}

type ReadinessPoint struct {
	WeekStart  string    `json:"week_start"` // YYYY-MM-DD, Monday
	Score      int       `json:"score"`
	ComputedAt time.Time `json:"computed_at"`
}

type TopicProgress struct {
	TopicID           string  `json:"topic_id"`
	TopicName         string  `json:"topic_name"`
	Category          string  `json:"category"`
	AverageConfidence float64 `json:"average_confidence"`
	Sessions          int     `json:"sessions"`
}

type ProgressResponse struct {
	Totals           repositories.StudyTotals `json:"totals"`
	LastSevenDays    []DayActivity            `json:"last_seven_days"`
	Categories       []CategoryShare          `json:"categories"`
	ReadinessHistory []ReadinessPoint         `json:"readiness_history"`
	Topics           []TopicProgress          `json:"topics"`
	Improvement      int                      `json:"improvement"` // latest minus oldest score in history
}

// ===== PROFILE DTOs =====

type UpsertProfileRequest struct {
	Name              string        `json:"name" validate:"required,min=2,max=100"`
	Email             string        `json:"email" validate:"required,email,max=255"`
	GraduationYear    int           `json:"graduation_year" validate:"required"`
	Branch            models.Branch `json:"branch" validate:"omitempty,branch"`
	TargetCompanies   []string      `json:"target_companies" validate:"required,min=1,dive,company_tag"`
	WeeklyGoalMinutes *int          `json:"weekly_goal_minutes" validate:"omitempty,gte=30,lte=10080"`
}
