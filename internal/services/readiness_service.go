package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/cache"
	"github.com/SAP-F-2025/readiness-service/internal/events"
	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/google/uuid"
)

// ReadinessConfig holds the scoring weights and cache lifetime used by ReadinessService.
type ReadinessConfig struct {
	Weights  readiness.ScoringWeights
	CacheTTL time.Duration
}

type readinessService struct {
	repo      repositories.Repository
	source    readiness.EventSource
	engine    *readiness.Engine
	catalog   *readiness.Catalog
	cache     cache.CacheService
	publisher events.EventPublisher
	config    ReadinessConfig
	logger    *ServiceLogger
	now       func() time.Time
}

func NewReadinessService(
	repo repositories.Repository,
	source readiness.EventSource,
	engine *readiness.Engine,
	catalog *readiness.Catalog,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	config ReadinessConfig,
	logger *slog.Logger,
) ReadinessService {
	return &readinessService{
		repo:      repo,
		source:    source,
		engine:    engine,
		catalog:   catalog,
		cache:     cacheService,
		publisher: publisher,
		config:    config,
		logger:    NewServiceLogger(logger, LogConfig{Service: "readiness-service", Component: "readiness"}),
		now:       time.Now,
	}
}

func (s *readinessService) Compute(ctx context.Context, userID string) (*ReadinessResponse, error) {
	op := s.logger.WithOperation(ctx, "compute_readiness", userID)

	response, _, err := s.compute(ctx, userID)
	op.LogResult("", err)
	return response, err
}

func (s *readinessService) Get(ctx context.Context, userID string) (*ReadinessResponse, error) {
	var cached ReadinessResponse
	err := s.cache.Get(ctx, cache.ReadinessKey(userID), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Logger().Warn("Readiness cache read failed", "user_id", userID, "error", err)
	}

	return s.Compute(ctx, userID)
}

func (s *readinessService) Breakdown(ctx context.Context, userID string) (*ReadinessBreakdown, error) {
	var cached ReadinessBreakdown
	err := s.cache.Get(ctx, cache.BreakdownKey(userID), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Logger().Warn("Breakdown cache read failed", "user_id", userID, "error", err)
	}

	op := s.logger.WithOperation(ctx, "readiness_breakdown", userID)
	_, breakdown, err := s.compute(ctx, userID)
	op.LogResult("", err)
	return breakdown, err
}

// Invalidate drops the cached results of a user. The version token is rotated
// first so a computation already in flight does not cache its older result.
func (s *readinessService) Invalidate(ctx context.Context, userID string) error {
	if err := s.cache.Set(ctx, cache.VersionKey(userID), uuid.NewString(), s.config.CacheTTL); err != nil {
		return fmt.Errorf("failed to rotate readiness cache version: %w", err)
	}
	if err := s.cache.Delete(ctx, cache.UserKeys(userID)...); err != nil {
		return fmt.Errorf("failed to invalidate readiness cache: %w", err)
	}
	return nil
}

// cacheVersion returns the current version token of a user, empty when none is set.
func (s *readinessService) cacheVersion(ctx context.Context, userID string) string {
	var version string
	if err := s.cache.Get(ctx, cache.VersionKey(userID), &version); err != nil {
		return ""
	}
	return version
}

// compute runs one full scoring pass, then caches, persists and announces the result.
func (s *readinessService) compute(ctx context.Context, userID string) (*ReadinessResponse, *ReadinessBreakdown, error) {
	version := s.cacheVersion(ctx, userID)
	sessions, attempts, err := s.source.LoadEvents(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load events: %w", err)
	}

	eval, err := s.engine.Evaluate(sessions, attempts, s.config.Weights, s.now().UTC())
	if err != nil {
		return nil, nil, err
	}
	if len(eval.Rejected) > 0 {
		s.logger.Logger().Warn("Events excluded from readiness computation",
			"user_id", userID,
			"rejected", len(eval.Rejected),
			"first", eval.Rejected[0].Error())
	}

	response := s.buildResponse(eval)
	breakdown := s.buildBreakdown(eval)

	previous, err := s.repo.Snapshot().GetLatest(ctx, nil, userID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, nil, fmt.Errorf("failed to get previous snapshot: %w", err)
		}
		previous = nil
	}

	snapshot, err := models.NewReadinessSnapshot(userID, eval.Result, len(eval.Topics))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.repo.Snapshot().Create(ctx, nil, snapshot); err != nil {
		return nil, nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.store(ctx, userID, version, response, breakdown)
	s.announce(ctx, userID, eval, previous)

	return response, breakdown, nil
}

func (s *readinessService) store(ctx context.Context, userID, version string, response *ReadinessResponse, breakdown *ReadinessBreakdown) {
	if current := s.cacheVersion(ctx, userID); current != version {
		s.logger.Logger().Debug("Activity changed during computation, not caching", "user_id", userID)
		return
	}
	if err := s.cache.Set(ctx, cache.ReadinessKey(userID), response, s.config.CacheTTL); err != nil {
		s.logger.Logger().Warn("Failed to cache readiness result", "user_id", userID, "error", err)
	}
	if err := s.cache.Set(ctx, cache.BreakdownKey(userID), breakdown, s.config.CacheTTL); err != nil {
		s.logger.Logger().Warn("Failed to cache readiness breakdown", "user_id", userID, "error", err)
	}
}

// announce publishes readiness.computed and, when the ranked weak topics differ
// from the previous snapshot, readiness.weak_areas_changed. Failures are logged only.
func (s *readinessService) announce(ctx context.Context, userID string, eval *readiness.Evaluation, previous *models.ReadinessSnapshot) {
	result := eval.Result
	weakAreas := toWeakAreaPayloads(result.WeakAreas)

	computed := events.ReadinessComputedEvent{
		OverallScore:   result.OverallScore,
		WeakAreas:      weakAreas,
		RejectedEvents: len(eval.Rejected),
		ComputedAt:     result.ComputedAt,
	}
	var previousIDs []string
	if previous != nil {
		score := previous.OverallScore
		computed.PreviousScore = &score
		previousIDs = previous.WeakTopicIDs()
	}
	s.publish(ctx, events.NewReadinessComputedEvent(userID, computed))

	currentIDs := make([]string, 0, len(result.WeakAreas))
	for _, w := range result.WeakAreas {
		currentIDs = append(currentIDs, w.TopicID)
	}
	if len(previousIDs) == 0 && len(currentIDs) == 0 {
		return
	}
	if !slices.Equal(previousIDs, currentIDs) {
		s.publish(ctx, events.NewWeakAreasChangedEvent(userID, previousIDs, weakAreas, result.ComputedAt))
	}
}

func (s *readinessService) publish(ctx context.Context, event *events.ReadinessEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Logger().Warn("Failed to publish event", "event_type", event.Type, "user_id", event.UserID, "error", err)
	}
}

func (s *readinessService) buildResponse(eval *readiness.Evaluation) *ReadinessResponse {
	return &ReadinessResponse{
		OverallScore:   eval.Result.OverallScore,
		WeakAreas:      weakAreaResponses(s.catalog, eval.Result.WeakAreas),
		ComputedAt:     eval.Result.ComputedAt,
		RejectedEvents: len(eval.Rejected),
	}
}

func (s *readinessService) buildBreakdown(eval *readiness.Evaluation) *ReadinessBreakdown {
	topics := make([]TopicBreakdown, 0, len(eval.Topics))
	for _, ts := range eval.Topics {
		stat := eval.Stats[ts.TopicID]
		tb := TopicBreakdown{
			TopicScore:   ts,
			TopicName:    topicName(s.catalog, ts.TopicID),
			TotalMinutes: stat.TotalMinutes,
			SessionCount: stat.SessionCount,
			AttemptCount: stat.AttemptCount,
		}
		if stat.DaysSinceLastStudied != readiness.NeverStudied {
			days := stat.DaysSinceLastStudied
			tb.DaysSinceLastStudied = &days
		}
		topics = append(topics, tb)
	}

	return &ReadinessBreakdown{
		OverallScore: eval.Result.OverallScore,
		Weights:      s.config.Weights,
		Topics:       topics,
		ComputedAt:   eval.Result.ComputedAt,
	}
}

// ===== SHARED HELPERS =====

func topicName(catalog *readiness.Catalog, topicID string) string {
	if topic, ok := catalog.Topic(topicID); ok {
		return topic.Name
	}
	return topicID
}

func weakAreaResponses(catalog *readiness.Catalog, weakAreas []readiness.WeakArea) []WeakAreaResponse {
	out := make([]WeakAreaResponse, 0, len(weakAreas))
	for _, w := range weakAreas {
		out = append(out, WeakAreaResponse{WeakArea: w, TopicName: topicName(catalog, w.TopicID)})
	}
	return out
}

func toWeakAreaPayloads(weakAreas []readiness.WeakArea) []events.WeakAreaPayload {
	out := make([]events.WeakAreaPayload, 0, len(weakAreas))
	for _, w := range weakAreas {
		out = append(out, events.WeakAreaPayload{
			TopicID:   w.TopicID,
			Score:     w.Score,
			Category:  w.Category,
			Unstarted: w.Unstarted,
		})
	}
	return out
}
