package repositories

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/readiness-service/internal/readiness"
)

type eventSource struct {
	repo Repository
}

// NewEventSource exposes stored study logs and mock attempts as engine events.
func NewEventSource(repo Repository) readiness.EventSource {
	return &eventSource{repo: repo}
}

func (s *eventSource) LoadEvents(ctx context.Context, userID string) ([]readiness.StudySession, []readiness.MockAttempt, error) {
	logs, err := s.repo.StudyLog().GetAllByUser(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load study logs: %w", err)
	}
	attempts, err := s.repo.MockAttempt().GetAllByUser(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load mock attempts: %w", err)
	}

	sessions := make([]readiness.StudySession, 0, len(logs))
	for _, l := range logs {
		sessions = append(sessions, l.ToSession())
	}
	events := make([]readiness.MockAttempt, 0, len(attempts))
	for _, a := range attempts {
		events = append(events, a.ToAttempt())
	}
	return sessions, events, nil
}
