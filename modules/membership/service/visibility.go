package service

import (
	eventEntity "artwalk-api/modules/event/entity"
	"artwalk-api/modules/membership/entity"

	"artwalk-api/core/errors"
)

// JoinDenial is the reason CanJoin refuses. Zero value means joining is
// permitted.
type JoinDenial struct {
	Code    errors.ErrorCode
	Message string
}

func (d JoinDenial) Denied() bool {
	return d.Code != ""
}

// CanView decides whether a viewer may see an event. Pure: the caller
// supplies the viewer's current role (nil for none) and whether any invite
// exists for them.
func CanView(event *eventEntity.Event, role *entity.MembershipRole, hasInvite bool) bool {
	if event.IsDeleted {
		return false
	}

	switch event.Visibility {
	case eventEntity.VisibilityPublicOpen, eventEntity.VisibilityPublicInvite:
		return true
	case eventEntity.VisibilityPrivate:
		if role != nil {
			return true
		}
		return hasInvite
	}
	return false
}

// CanJoin decides whether a user may become an attendee right now. Pure
// decision logic; every mutating join path consults it first.
func CanJoin(event *eventEntity.Event, role *entity.MembershipRole, hasPendingInvite bool) JoinDenial {
	if role != nil && (*role == entity.RoleHost || *role == entity.RoleAttendee) {
		return JoinDenial{Code: errors.ErrAlreadyJoined, Message: "You have already joined this event"}
	}

	switch event.Visibility {
	case eventEntity.VisibilityPublicOpen:
		return JoinDenial{}
	case eventEntity.VisibilityPublicInvite:
		if hasPendingInvite {
			return JoinDenial{}
		}
		return JoinDenial{Code: errors.ErrInviteRequired, Message: "This event requires an invitation to join"}
	case eventEntity.VisibilityPrivate:
		return JoinDenial{Code: errors.ErrPrivateEvent, Message: "This event is private"}
	}
	return JoinDenial{Code: errors.ErrForbidden, Message: "Joining is not permitted"}
}
