package models

import "time"

// Base carries the identity and timestamps shared by every stored entity.
// The ID is an opaque UUID string assigned once at creation; the timestamps
// are maintained by the storage layer on every write.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
