package service

import (
	"context"
	"fmt"

	"artwalk-api/core/errors"
	"artwalk-api/core/logger"
	eventRepo "artwalk-api/modules/event/repository"
	"artwalk-api/modules/invitation/dto"
	"artwalk-api/modules/invitation/entity"
	"artwalk-api/modules/invitation/repository"
	"artwalk-api/modules/notification/tasks"
	userRepo "artwalk-api/modules/user/repository"

	"github.com/google/uuid"
)

// InvitationService drives the host-initiated invite lifecycle:
// PENDING -> ACCEPTED or DECLINED, kept in sync with the membership ledger.
type InvitationService struct {
	repo       repository.InvitationRepositoryInterface
	eventRepo  eventRepo.EventRepositoryInterface
	userRepo   userRepo.UserRepositoryInterface
	dispatcher *tasks.Dispatcher
}

// InvitationServiceInterface defines the service contract
type InvitationServiceInterface interface {
	CreateInvites(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID, req *dto.CreateInvitesRequest) (*dto.InvitesResponse, *errors.AppError)
	AcceptInvite(ctx context.Context, inviteID uuid.UUID, userID uuid.UUID) (*dto.InviteResponse, *errors.AppError)
	DeclineInvite(ctx context.Context, inviteID uuid.UUID, userID uuid.UUID) *errors.AppError
	GetPendingInvites(ctx context.Context, userID uuid.UUID) (*dto.InvitesResponse, *errors.AppError)
	GetEventInvites(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID) (*dto.InvitesResponse, *errors.AppError)
}

func NewInvitationService(
	repo repository.InvitationRepositoryInterface,
	eventRepository eventRepo.EventRepositoryInterface,
	userRepository userRepo.UserRepositoryInterface,
	dispatcher *tasks.Dispatcher,
) InvitationServiceInterface {
	return &InvitationService{
		repo:       repo,
		eventRepo:  eventRepository,
		userRepo:   userRepository,
		dispatcher: dispatcher,
	}
}

// CreateInvites invites a batch of users. Ids are deduped, the host is
// excluded, every id must resolve to a real user, and re-invoking with
// overlapping ids only adds the new ones.
func (s *InvitationService) CreateInvites(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID, req *dto.CreateInvitesRequest) (*dto.InvitesResponse, *errors.AppError) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the host may invite users", nil)
	}

	// Dedupe and drop the host
	seen := make(map[uuid.UUID]bool, len(req.InviteeIDs))
	inviteeIDs := make([]uuid.UUID, 0, len(req.InviteeIDs))
	for _, idStr := range req.InviteeIDs {
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid user id: "+idStr, nil)
		}
		if id == hostID || seen[id] {
			continue
		}
		seen[id] = true
		inviteeIDs = append(inviteeIDs, id)
	}

	if len(inviteeIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "No invitees to invite", nil)
	}

	exists, err := s.userRepo.ExistsBatch(ctx, inviteeIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to validate users", err)
	}
	for _, id := range inviteeIDs {
		if !exists[id] {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown user: "+id.String(), nil)
		}
	}

	created, err := s.repo.CreateBatch(ctx, eventID, hostID, inviteeIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create invites", err)
	}

	for _, invite := range created {
		s.dispatcher.Dispatch(tasks.DeliverPayload{
			UserID:  invite.InviteeID,
			Title:   "New event invitation",
			Message: fmt.Sprintf("You have been invited to %s", event.Title),
			Type:    "invitation",
			Data: map[string]interface{}{
				"invite_id": invite.ID.String(),
				"event_id":  eventID.String(),
			},
		})
	}

	logger.Info("InvitationService:CreateInvites:Success",
		"event_id", eventID, "requested", len(inviteeIDs), "created", len(created))
	return dto.ToInvitesResponse(created), nil
}

// AcceptInvite accepts a pending invite and promotes the invitee to
// attendee.
func (s *InvitationService) AcceptInvite(ctx context.Context, inviteID uuid.UUID, userID uuid.UUID) (*dto.InviteResponse, *errors.AppError) {
	invite, err := s.repo.GetByID(ctx, inviteID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load invite", err)
	}
	if invite == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invite not found", nil)
	}

	if invite.InviteeID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the invitee may respond to an invite", nil)
	}

	if invite.Status != entity.InviteStatusPending {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Invite has already been responded to", nil)
	}

	if err := s.repo.Accept(ctx, inviteID, invite.EventID, userID); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to accept invite", err)
	}

	updated, err := s.repo.GetByID(ctx, inviteID)
	if err != nil || updated == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to reload invite", err)
	}

	logger.Info("InvitationService:AcceptInvite:Success", "invite_id", inviteID, "event_id", invite.EventID)
	resp := dto.ToInviteResponse(updated)
	return &resp, nil
}

// DeclineInvite declines a pending invite and removes the provisional
// INVITED membership.
func (s *InvitationService) DeclineInvite(ctx context.Context, inviteID uuid.UUID, userID uuid.UUID) *errors.AppError {
	invite, err := s.repo.GetByID(ctx, inviteID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load invite", err)
	}
	if invite == nil {
		return errors.NewAppError(errors.ErrNotFound, "Invite not found", nil)
	}

	if invite.InviteeID != userID {
		return errors.NewAppError(errors.ErrForbidden, "Only the invitee may respond to an invite", nil)
	}

	if invite.Status != entity.InviteStatusPending {
		return errors.NewAppError(errors.ErrAlreadyExists, "Invite has already been responded to", nil)
	}

	if err := s.repo.Decline(ctx, inviteID, invite.EventID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to decline invite", err)
	}

	logger.Info("InvitationService:DeclineInvite:Success", "invite_id", inviteID, "event_id", invite.EventID)
	return nil
}

// GetPendingInvites returns the user's invite inbox.
func (s *InvitationService) GetPendingInvites(ctx context.Context, userID uuid.UUID) (*dto.InvitesResponse, *errors.AppError) {
	invites, err := s.repo.GetPendingByInviteeID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load invites", err)
	}
	return dto.ToInvitesResponse(invites), nil
}

// GetEventInvites lists all invites for an event, host-only.
func (s *InvitationService) GetEventInvites(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID) (*dto.InvitesResponse, *errors.AppError) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the host may list event invites", nil)
	}

	invites, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load invites", err)
	}
	return dto.ToInvitesResponse(invites), nil
}
