package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/readiness-service/internal/errors"
	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
)

type profileService struct {
	repo              repositories.Repository
	publisher         events.EventPublisher
	validator         *validator.Validator
	weeklyGoalMinutes int
	logger            *ServiceLogger
	now               func() time.Time
}

func NewProfileService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	validator *validator.Validator,
	weeklyGoalMinutes int,
	logger *slog.Logger,
) ProfileService {
	return &profileService{
		repo:              repo,
		publisher:         publisher,
		validator:         validator,
		weeklyGoalMinutes: weeklyGoalMinutes,
		logger:            NewServiceLogger(logger, LogConfig{Service: "readiness-service", Component: "profile"}),
		now:               time.Now,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Upsert(ctx context.Context, userID string, req *UpsertProfileRequest) (*models.UserProfile, error) {
	op := s.logger.WithOperation(ctx, "upsert_profile", userID)

	profile, err := s.upsert(ctx, userID, req)
	op.LogResult(userID, err)
	return profile, err
}

func (s *profileService) upsert(ctx context.Context, userID string, req *UpsertProfileRequest) (*models.UserProfile, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if errs := s.validator.Business().ValidateGraduationYear(req.GraduationYear); len(errs) > 0 {
		return nil, errs
	}

	var profile *models.UserProfile
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		taken, err := tx.Profile().ExistsByEmail(ctx, nil, req.Email, userID)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return ValidationErrors{*apperrors.NewRuleError("email", "duplicate_email", req.Email)}
		}

		existing, err := tx.Profile().GetByID(ctx, nil, userID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		profile = &models.UserProfile{ID: userID, WeeklyGoalMinutes: s.weeklyGoalMinutes}
		if existing != nil && err == nil {
			profile = existing
		}
		profile.Name = req.Name
		profile.Email = req.Email
		profile.GraduationYear = req.GraduationYear
		profile.Branch = req.Branch
		if req.WeeklyGoalMinutes != nil {
			profile.WeeklyGoalMinutes = *req.WeeklyGoalMinutes
		}
		if err := profile.SetCompanies(dedupeCompanies(req.TargetCompanies)); err != nil {
			return fmt.Errorf("failed to encode target companies: %w", err)
		}

		if err := tx.Profile().Upsert(ctx, nil, profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// CompleteOnboarding marks the saved profile as onboarded. A profile has to be
// saved first so the target companies are known.
func (s *profileService) CompleteOnboarding(ctx context.Context, userID string) (*models.UserProfile, error) {
	op := s.logger.WithOperation(ctx, "complete_onboarding", userID)

	profile, err := s.Get(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			err = ErrProfileIncomplete
		}
		op.LogResult(userID, err)
		return nil, err
	}
	if profile.IsOnboarded() {
		op.LogResult(userID, ErrAlreadyOnboarded)
		return nil, ErrAlreadyOnboarded
	}

	at := s.now().UTC()
	if err := s.repo.Profile().MarkOnboarded(ctx, nil, userID, at); err != nil {
		err = fmt.Errorf("failed to mark onboarding: %w", err)
		op.LogResult(userID, err)
		return nil, err
	}
	profile.OnboardedAt = &at
	op.LogResult(userID, nil)

	if s.publisher != nil {
		event := events.NewProfileOnboardedEvent(userID, profile.Companies(), profile.GraduationYear, at)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Logger().Warn("Failed to publish event", "event_type", event.Type, "user_id", userID, "error", err)
		}
	}
	return profile, nil
}

func dedupeCompanies(companies []string) []string {
	seen := make(map[string]struct{}, len(companies))
	out := make([]string, 0, len(companies))
	for _, c := range companies {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
