package entity

import (
	"time"

	"github.com/google/uuid"
)

// MembershipRole is the single role a user holds in an event. Exactly one
// membership row exists per (event, user) pair; transitions mutate the row
// in place.
type MembershipRole string

const (
	RoleHost     MembershipRole = "host"
	RoleAttendee MembershipRole = "attendee"
	RoleInvited  MembershipRole = "invited"
)

func (r MembershipRole) Valid() bool {
	switch r {
	case RoleHost, RoleAttendee, RoleInvited:
		return true
	}
	return false
}

type Membership struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	EventID   uuid.UUID      `db:"event_id" json:"event_id"`
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	Role      MembershipRole `db:"role" json:"role"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
