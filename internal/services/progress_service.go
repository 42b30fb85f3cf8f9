package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
)

const (
	day = 24 * time.Hour

	streakLookbackDays = 365
	recentActivitySize = 5
	historyWeeks       = 5

	// Daily plan minutes per weak area
	planMinutesUnstarted = 60
	planMinutesLowScore  = 45
	planMinutesDefault   = 30
	lowScoreThreshold    = 40
)

type progressService struct {
	repo              repositories.Repository
	readiness         ReadinessService
	catalog           *readiness.Catalog
	weeklyGoalMinutes int
	logger            *slog.Logger
	now               func() time.Time
}

func NewProgressService(
	repo repositories.Repository,
	readinessService ReadinessService,
	catalog *readiness.Catalog,
	weeklyGoalMinutes int,
	logger *slog.Logger,
) ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &progressService{
		repo:              repo,
		readiness:         readinessService,
		catalog:           catalog,
		weeklyGoalMinutes: weeklyGoalMinutes,
		logger:            logger.With("component", "progress"),
		now:               time.Now,
	}
}

// ===== DASHBOARD =====

func (s *progressService) Dashboard(ctx context.Context, userID string) (*DashboardResponse, error) {
	now := s.now().UTC()
	today := startOfDay(now)

	result, err := s.readiness.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get readiness: %w", err)
	}

	dashboard := &DashboardResponse{
		ReadinessScore:    result.OverallScore,
		WeeklyGoalMinutes: s.weeklyGoalFor(ctx, userID),
		WeakAreas:         result.WeakAreas,
		DailyPlan:         buildDailyPlan(result.WeakAreas),
		ComputedAt:        result.ComputedAt,
	}

	lastWeek, err := s.repo.Snapshot().GetLatestBefore(ctx, nil, userID, now.Add(-7*day))
	switch {
	case err == nil:
		change := result.OverallScore - lastWeek.OverallScore
		dashboard.ScoreChange = &change
	case !repositories.IsNotFoundError(err):
		return nil, fmt.Errorf("failed to get last week's snapshot: %w", err)
	}

	logs, err := s.repo.StudyLog().GetByDateRange(ctx, nil, userID, today.Add(-streakLookbackDays*day), today.Add(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get study logs: %w", err)
	}
	dashboard.StreakDays = studyStreak(logs, today)
	weekStart := today.Add(-6 * day)
	for _, log := range logs {
		studied := log.StudiedAt.UTC()
		if !studied.Before(today) {
			dashboard.TodayMinutes += log.DurationMinutes
		}
		if !studied.Before(weekStart) {
			dashboard.WeeklyMinutes += log.DurationMinutes
		}
	}

	recent, err := s.repo.StudyLog().GetRecent(ctx, nil, userID, recentActivitySize)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	dashboard.RecentActivity = make([]*StudyLogResponse, 0, len(recent))
	for _, log := range recent {
		dashboard.RecentActivity = append(dashboard.RecentActivity, &StudyLogResponse{StudyLog: log, TopicName: topicName(s.catalog, log.TopicID)})
	}

	return dashboard, nil
}

func (s *progressService) weeklyGoalFor(ctx context.Context, userID string) int {
	profile, err := s.repo.Profile().GetByID(ctx, nil, userID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			s.logger.Warn("Failed to load profile for weekly goal", "user_id", userID, "error", err)
		}
		return s.weeklyGoalMinutes
	}
	if profile.WeeklyGoalMinutes > 0 {
		return profile.WeeklyGoalMinutes
	}
	return s.weeklyGoalMinutes
}

// buildDailyPlan suggests one block per weak area, longer for weaker topics.
func buildDailyPlan(weakAreas []WeakAreaResponse) []PlanItem {
	plan := make([]PlanItem, 0, len(weakAreas))
	for _, w := range weakAreas {
		item := PlanItem{
			TopicID:   w.TopicID,
			TopicName: w.TopicName,
			Category:  w.Category,
			Minutes:   planMinutesDefault,
			Reason:    "Revise to keep it fresh",
		}
		switch {
		case w.Unstarted:
			item.Minutes = planMinutesUnstarted
			item.Reason = "Not started yet"
		case w.Score < lowScoreThreshold:
			item.Minutes = planMinutesLowScore
			item.Reason = "Low readiness score"
		}
		plan = append(plan, item)
	}
	return plan
}

// studyStreak counts consecutive days with at least one session. The streak may
// end today or yesterday; anything older is broken.
func studyStreak(logs []*models.StudyLog, today time.Time) int {
	days := make(map[time.Time]struct{}, len(logs))
	for _, log := range logs {
		days[startOfDay(log.StudiedAt)] = struct{}{}
	}

	cursor := today
	if _, ok := days[cursor]; !ok {
		cursor = cursor.Add(-day)
		if _, ok := days[cursor]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := days[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.Add(-day)
	}
}

// ===== PROGRESS =====

func (s *progressService) Progress(ctx context.Context, userID string) (*ProgressResponse, error) {
	now := s.now().UTC()
	today := startOfDay(now)

	totals, err := s.repo.StudyLog().GetTotals(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study totals: %w", err)
	}

	firstDay := today.Add(-6 * day)
	logs, err := s.repo.StudyLog().GetByDateRange(ctx, nil, userID, firstDay, today.Add(day))
	if err != nil {
		return nil, fmt.Errorf("failed to get study logs: %w", err)
	}

	categories, err := s.repo.StudyLog().GetCategoryMinutes(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category minutes: %w", err)
	}

	snapshots, err := s.repo.Snapshot().GetHistory(ctx, nil, userID, weekStart(now).Add(-(historyWeeks-1)*7*day))
	if err != nil {
		return nil, fmt.Errorf("failed to get readiness history: %w", err)
	}

	confidence, err := s.repo.StudyLog().GetTopicConfidence(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic confidence: %w", err)
	}

	history := weeklyHistory(snapshots)
	progress := &ProgressResponse{
		Totals:           *totals,
		LastSevenDays:    lastSevenDays(logs, firstDay),
		Categories:       categoryShares(categories),
		ReadinessHistory: history,
		Topics:           s.topicProgress(confidence),
	}
	if len(history) > 1 {
		progress.Improvement = history[len(history)-1].Score - history[0].Score
	}
	return progress, nil
}

func lastSevenDays(logs []*models.StudyLog, firstDay time.Time) []DayActivity {
	activity := make([]DayActivity, 7)
	for i := range activity {
		d := firstDay.Add(time.Duration(i) * day)
		activity[i] = DayActivity{Date: d.Format("2006-01-02"), Weekday: d.Weekday().String()[:3]}
	}
	for _, log := range logs {
		i := int(startOfDay(log.StudiedAt).Sub(firstDay) / day)
		if i < 0 || i >= len(activity) {
			continue
		}
		activity[i].Minutes += log.DurationMinutes
		activity[i].Sessions++
	}
	return activity
}

func categoryShares(categories []repositories.CategoryMinutes) []CategoryShare {
	total := 0
	for _, c := range categories {
		total += c.Minutes
	}

	shares := make([]CategoryShare, 0, len(categories))
	for _, c := range categories {
		share := CategoryShare{
			Category: c.Category,
			Minutes:  c.Minutes,
			Hours:    math.Round(float64(c.Minutes)/60*10) / 10,
		}
		if total > 0 {
			share.Percentage = int(math.Round(float64(c.Minutes) * 100 / float64(total)))
		}
		shares = append(shares, share)
	}
	return shares
}

// weeklyHistory keeps the last snapshot of each week. snapshots must be oldest first.
func weeklyHistory(snapshots []*models.ReadinessSnapshot) []ReadinessPoint {
	points := make([]ReadinessPoint, 0, historyWeeks)
	for _, snap := range snapshots {
		ws := weekStart(snap.ComputedAt).Format("2006-01-02")
		point := ReadinessPoint{WeekStart: ws, Score: snap.OverallScore, ComputedAt: snap.ComputedAt.UTC()}
		if n := len(points); n > 0 && points[n-1].WeekStart == ws {
			points[n-1] = point
			continue
		}
		points = append(points, point)
	}
	if len(points) > historyWeeks {
		points = points[len(points)-historyWeeks:]
	}
	return points
}

func (s *progressService) topicProgress(confidence []repositories.TopicConfidence) []TopicProgress {
	out := make([]TopicProgress, 0, len(confidence))
	for _, tc := range confidence {
		tp := TopicProgress{
			TopicID:           tc.TopicID,
			TopicName:         tc.TopicID,
			AverageConfidence: math.Round(tc.AverageConfidence*10) / 10,
			Sessions:          tc.Sessions,
		}
		if topic, ok := s.catalog.Topic(tc.TopicID); ok {
			tp.TopicName = topic.Name
			tp.Category = topic.Category
		}
		out = append(out, tp)
	}
	return out
}

// ===== TIME HELPERS =====

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday starting the week of t.
func weekStart(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.Add(-time.Duration(offset) * day)
}
