package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventVisibility controls who may view an event and how membership can be
// acquired.
type EventVisibility string

const (
	// VisibilityPublicOpen: anyone may view, anyone may join.
	VisibilityPublicOpen EventVisibility = "public_open"
	// VisibilityPublicInvite: anyone may view, joining requires a pending
	// invite or an approved join request.
	VisibilityPublicInvite EventVisibility = "public_invite"
	// VisibilityPrivate: only the host, members and invitees may view;
	// membership arises solely from invite acceptance.
	VisibilityPrivate EventVisibility = "private"
)

func (v EventVisibility) Valid() bool {
	switch v {
	case VisibilityPublicOpen, VisibilityPublicInvite, VisibilityPrivate:
		return true
	}
	return false
}

// Event is the aggregate root. Memberships, invites, join requests, chat
// messages and favorites all hang off it and are removed with it.
type Event struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Slug            string          `db:"slug" json:"slug"`
	Title           string          `db:"title" json:"title"`
	Description     *string         `db:"description" json:"description,omitempty"`
	HostID          uuid.UUID       `db:"host_id" json:"host_id"`
	Visibility      EventVisibility `db:"visibility" json:"visibility"`
	StartsAt        time.Time       `db:"starts_at" json:"starts_at"`
	StartLocationID uuid.UUID       `db:"start_location_id" json:"start_location_id"`
	IsDeleted       bool            `db:"is_deleted" json:"is_deleted"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// EventStop is a waypoint beyond the start location. Position is 1-based
// and unique within an event, as is the location itself.
type EventStop struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EventID    uuid.UUID `db:"event_id" json:"event_id"`
	LocationID uuid.UUID `db:"location_id" json:"location_id"`
	Position   int       `db:"position" json:"position"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
