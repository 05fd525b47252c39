package entity

import (
	"time"

	"github.com/google/uuid"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
	// InviteStatusExpired is reserved. No operation assigns it today; it
	// exists so the column constraint already admits a future expiry sweep.
	InviteStatusExpired InviteStatus = "expired"
)

// Invite is a host-issued request for a specific user to join an event.
// At most one invite exists per (event, invitee); RespondedAt is null
// exactly while the status is pending.
type Invite struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	EventID     uuid.UUID    `db:"event_id" json:"event_id"`
	InviterID   uuid.UUID    `db:"inviter_id" json:"inviter_id"`
	InviteeID   uuid.UUID    `db:"invitee_id" json:"invitee_id"`
	Status      InviteStatus `db:"status" json:"status"`
	RespondedAt *time.Time   `db:"responded_at" json:"responded_at"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}
