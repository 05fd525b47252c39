package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite bookmarks an event for a user. One row per (event, user) pair.
type Favorite struct {
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
