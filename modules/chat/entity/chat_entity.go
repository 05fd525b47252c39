package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one line in an event's shared chat log. The log holds
// only the most recent messages per event; older ones are trimmed on post.
type ChatMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
