package service

import (
	"context"

	"artwalk-api/core/errors"
	"artwalk-api/core/logger"
	eventEntity "artwalk-api/modules/event/entity"
	eventRepo "artwalk-api/modules/event/repository"
	invitationRepo "artwalk-api/modules/invitation/repository"
	"artwalk-api/modules/membership/entity"
	"artwalk-api/modules/membership/repository"

	"github.com/google/uuid"
)

// MembershipService is the single source of truth for a user's role in an
// event.
type MembershipService struct {
	repo       repository.MembershipRepositoryInterface
	eventRepo  eventRepo.EventRepositoryInterface
	inviteRepo invitationRepo.InvitationRepositoryInterface
}

// MembershipServiceInterface defines the service contract
type MembershipServiceInterface interface {
	Join(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError
	Leave(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError
	UserHasJoined(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, *errors.AppError)
	GetMembers(ctx context.Context, eventID uuid.UUID, viewerID uuid.UUID) ([]entity.Membership, *errors.AppError)
}

func NewMembershipService(repo repository.MembershipRepositoryInterface, eventRepository eventRepo.EventRepositoryInterface, inviteRepository invitationRepo.InvitationRepositoryInterface) MembershipServiceInterface {
	return &MembershipService{
		repo:       repo,
		eventRepo:  eventRepository,
		inviteRepo: inviteRepository,
	}
}

// Join registers the user as an attendee, subject to the visibility policy.
func (s *MembershipService) Join(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	membership, err := s.repo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}

	var role *entity.MembershipRole
	if membership != nil {
		role = &membership.Role
	}

	hasPendingInvite := false
	if event.Visibility == eventEntity.VisibilityPublicInvite {
		hasPendingInvite, err = s.inviteRepo.HasPendingInvite(ctx, eventID, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to check invites", err)
		}
	}

	if denial := CanJoin(event, role, hasPendingInvite); denial.Denied() {
		return errors.NewAppError(denial.Code, denial.Message, nil)
	}

	// Upsert rather than insert: a concurrent INVITED row must not make the
	// promotion fail, it just gets its role rewritten. Duplicate joins are
	// caught by CanJoin above, never by the constraint.
	if err := s.repo.Grant(ctx, eventID, userID, entity.RoleAttendee); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to join event", err)
	}

	logger.Info("MembershipService:Join:Success", "event_id", eventID, "user_id", userID)
	return nil
}

// Leave removes the user's attendee registration. The host role is
// permanent and cannot be left.
func (s *MembershipService) Leave(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID == userID {
		return errors.NewAppError(errors.ErrHostCannotLeave, "The host cannot leave their own event", nil)
	}

	removed, err := s.repo.Revoke(ctx, eventID, userID, entity.RoleAttendee)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to leave event", err)
	}
	if !removed {
		return errors.NewAppError(errors.ErrNotAMember, "You are not registered for this event", nil)
	}

	logger.Info("MembershipService:Leave:Success", "event_id", eventID, "user_id", userID)
	return nil
}

// UserHasJoined reports whether the user is host or attendee. Invitees do
// not count as joined.
func (s *MembershipService) UserHasJoined(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, *errors.AppError) {
	joined, err := s.repo.HasRole(ctx, eventID, userID, []entity.MembershipRole{entity.RoleHost, entity.RoleAttendee})
	if err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	return joined, nil
}

// GetMembers lists the membership ledger for an event, visible only to
// users allowed to view the event.
func (s *MembershipService) GetMembers(ctx context.Context, eventID uuid.UUID, viewerID uuid.UUID) ([]entity.Membership, *errors.AppError) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	membership, err := s.repo.GetByEventAndUser(ctx, eventID, viewerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}

	var role *entity.MembershipRole
	if membership != nil {
		role = &membership.Role
	}

	hasInvite := false
	if role == nil {
		hasInvite, err = s.inviteRepo.HasPendingInvite(ctx, eventID, viewerID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check invites", err)
		}
	}

	// Not-found rather than forbidden, so a hidden event's existence is
	// not confirmed to strangers. Matches the event detail reads.
	if !CanView(event, role, hasInvite) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	members, err := s.repo.GetMembersByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list members", err)
	}

	return members, nil
}
