package entity

import (
	"time"

	"github.com/google/uuid"
)

type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusApproved JoinRequestStatus = "approved"
	JoinRequestStatusDeclined JoinRequestStatus = "declined"
)

func (s JoinRequestStatus) Valid() bool {
	switch s {
	case JoinRequestStatusPending, JoinRequestStatusApproved, JoinRequestStatusDeclined:
		return true
	}
	return false
}

// JoinRequest is a user's petition to join an invite-only event. One row
// per (event, requester) pair.
type JoinRequest struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	EventID     uuid.UUID         `db:"event_id" json:"event_id"`
	RequesterID uuid.UUID         `db:"requester_id" json:"requester_id"`
	Status      JoinRequestStatus `db:"status" json:"status"`
	DecidedAt   *time.Time        `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}
