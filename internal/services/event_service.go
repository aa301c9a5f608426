package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/avenn/stayfinder-be/internal/models"
	"github.com/avenn/stayfinder-be/internal/storage"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 200
)

// EventServiceProvider defines the interface for audit event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message string, subjectID *string) error
	GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error)
}

// EventService keeps an audit trail of facade operations. Recording is fire
// and forget: callers do not fail their request when the trail is unavailable.
type EventService struct {
	events storage.EventStore
}

// NewEventService creates a new EventService.
func NewEventService(events storage.EventStore) *EventService {
	return &EventService{events: events}
}

// CreateEvent logs a new event to the audit trail.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message string, subjectID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		SubjectID: subjectID,
	}
	return s.events.Create(ctx, &event)
}

// GetRecentEvents retrieves the most recent events, newest first. Limits
// outside (0, maxEventLimit] fall back to the default.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > maxEventLimit {
		limit = defaultEventLimit
	}
	return s.events.ListRecent(ctx, limit)
}
