package entity

import (
	"time"

	"github.com/google/uuid"
)

// DirectChat is a one-on-one conversation between two members of the same
// event. The pair is stored ordered, UserA below UserB by string compare,
// so lookups never need to try both orderings.
type DirectChat struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserA     uuid.UUID `db:"user_a" json:"user_a"`
	UserB     uuid.UUID `db:"user_b" json:"user_b"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether the user is one of the chat's two sides.
func (c *DirectChat) HasParticipant(userID uuid.UUID) bool {
	return c.UserA == userID || c.UserB == userID
}

// OtherParticipant returns the counterpart of the given user.
func (c *DirectChat) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}

// NormalizePair orders two user ids the way DirectChat stores them.
func NormalizePair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if x.String() < y.String() {
		return x, y
	}
	return y, x
}

type DirectMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ChatID    uuid.UUID `db:"chat_id" json:"chat_id"`
	SenderID  uuid.UUID `db:"sender_id" json:"sender_id"`
	Body      string    `db:"body" json:"body"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DirectChatLeave hides a chat from one participant. Messages survive a
// leave; sending to the chat removes the counterpart's leave row.
type DirectChatLeave struct {
	ChatID uuid.UUID `db:"chat_id" json:"chat_id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`
	LeftAt time.Time `db:"left_at" json:"left_at"`
}
