package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenn/stayfinder-be/internal/models"
)

// EventStore persists audit events in SQLite.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Create(ctx context.Context, event *models.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events(id, type, level, message, subject_id, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.SubjectID, event.CreatedAt)
	return translateErr(err)
}

// ListRecent returns events newest first, capped at limit when positive.
func (s *EventStore) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	query := "SELECT id, type, level, message, subject_id, created_at FROM events ORDER BY created_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.SubjectID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
