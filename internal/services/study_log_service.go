package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
)

type studyLogService struct {
	repo      repositories.Repository
	readiness ReadinessService
	publisher events.EventPublisher
	catalog   *readiness.Catalog
	validator *validator.Validator
	logger    *ServiceLogger
	now       func() time.Time
}

func NewStudyLogService(
	repo repositories.Repository,
	readinessService ReadinessService,
	publisher events.EventPublisher,
	catalog *readiness.Catalog,
	validator *validator.Validator,
	logger *slog.Logger,
) StudyLogService {
	return &studyLogService{
		repo:      repo,
		readiness: readinessService,
		publisher: publisher,
		catalog:   catalog,
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: "readiness-service", Component: "study_log"}),
		now:       time.Now,
	}
}

func (s *studyLogService) Create(ctx context.Context, userID string, req *CreateStudyLogRequest) (*StudyLogResponse, error) {
	op := s.logger.WithOperation(ctx, "create_study_log", userID)

	log, err := s.create(ctx, userID, req)
	if err != nil {
		op.LogResult("", err)
		return nil, err
	}
	op.LogResult(strconv.FormatUint(uint64(log.ID), 10), nil)

	s.afterWrite(ctx, userID, events.NewStudyLoggedEvent(userID, events.StudyLoggedEvent{
		StudyLogID:       log.ID,
		TopicID:          log.TopicID,
		Category:         string(log.Category),
		DurationMinutes:  log.DurationMinutes,
		ConfidenceRating: log.ConfidenceRating,
		StudiedAt:        log.StudiedAt,
	}))

	return s.toResponse(log), nil
}

func (s *studyLogService) create(ctx context.Context, userID string, req *CreateStudyLogRequest) (*models.StudyLog, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if errs := s.validator.Business().ValidateStudyLog(req.TopicID, string(req.Category), req.DurationMinutes); len(errs) > 0 {
		return nil, errs
	}

	studiedAt := s.now().UTC()
	if req.StudiedAt != nil && !req.StudiedAt.IsZero() {
		studiedAt = req.StudiedAt.UTC()
	}

	log := &models.StudyLog{
		UserID:           userID,
		TopicID:          req.TopicID,
		Category:         req.Category,
		DurationMinutes:  req.DurationMinutes,
		ConfidenceRating: req.ConfidenceRating,
		Notes:            req.Notes,
		StudiedAt:        studiedAt,
	}
	if err := s.repo.StudyLog().Create(ctx, nil, log); err != nil {
		return nil, fmt.Errorf("failed to create study log: %w", err)
	}
	return log, nil
}

func (s *studyLogService) List(ctx context.Context, userID string, filters repositories.StudyLogFilters) (*StudyLogListResponse, error) {
	filters.Limit, filters.Offset = normalizePage(filters.Limit, filters.Offset)

	logs, total, err := s.repo.StudyLog().List(ctx, nil, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list study logs: %w", err)
	}

	response := &StudyLogListResponse{
		Logs:   make([]*StudyLogResponse, 0, len(logs)),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}
	for _, log := range logs {
		response.Logs = append(response.Logs, s.toResponse(log))
	}
	return response, nil
}

func (s *studyLogService) Delete(ctx context.Context, userID string, id uint) error {
	op := s.logger.WithOperation(ctx, "delete_study_log", userID)
	resourceID := strconv.FormatUint(uint64(id), 10)

	log, err := s.repo.StudyLog().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			err = ErrStudyLogNotFound
		} else {
			err = fmt.Errorf("failed to get study log: %w", err)
		}
		op.LogResult(resourceID, err)
		return err
	}

	if log.UserID != userID {
		err = NewPermissionError(userID, id, "study_log", "delete", "not owner")
		op.LogResult(resourceID, err)
		return err
	}

	if err = s.repo.StudyLog().Delete(ctx, nil, id); err != nil {
		err = fmt.Errorf("failed to delete study log: %w", err)
		op.LogResult(resourceID, err)
		return err
	}
	op.LogResult(resourceID, nil)

	s.afterWrite(ctx, userID, events.NewStudyLogDeletedEvent(userID, id, log.TopicID))
	return nil
}

// afterWrite drops the cached readiness of the user and publishes event.
// The write already succeeded, so failures here are logged and swallowed.
func (s *studyLogService) afterWrite(ctx context.Context, userID string, event *events.ReadinessEvent) {
	if err := s.readiness.Invalidate(ctx, userID); err != nil {
		s.logger.Logger().Warn("Failed to invalidate readiness cache", "user_id", userID, "error", err)
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Logger().Warn("Failed to publish event", "event_type", event.Type, "user_id", userID, "error", err)
	}
}

func (s *studyLogService) toResponse(log *models.StudyLog) *StudyLogResponse {
	return &StudyLogResponse{StudyLog: log, TopicName: topicName(s.catalog, log.TopicID)}
}

// normalizePage applies the listing defaults used by the repositories.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
