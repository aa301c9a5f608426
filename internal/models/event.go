package models

import "time"

// Event records an auditable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "user.register", "review.delete"
	Level     string    `json:"level"` // e.g. "info", "warn"
	Message   string    `json:"message"`
	SubjectID *string   `json:"subject_id,omitempty"` // id of the affected record, if any
	CreatedAt time.Time `json:"created_at"`
}
