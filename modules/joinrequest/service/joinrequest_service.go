package service

import (
	"context"
	"fmt"

	"artwalk-api/core/errors"
	"artwalk-api/core/logger"
	eventEntity "artwalk-api/modules/event/entity"
	eventRepo "artwalk-api/modules/event/repository"
	invitationRepo "artwalk-api/modules/invitation/repository"
	"artwalk-api/modules/joinrequest/dto"
	"artwalk-api/modules/joinrequest/entity"
	"artwalk-api/modules/joinrequest/repository"
	membershipEntity "artwalk-api/modules/membership/entity"
	membershipRepo "artwalk-api/modules/membership/repository"
	"artwalk-api/modules/notification/tasks"

	"github.com/google/uuid"
)

// JoinRequestService drives the request-to-join lifecycle for invite-only
// events: PENDING -> APPROVED or DECLINED, decided by the host.
type JoinRequestService struct {
	repo       repository.JoinRequestRepositoryInterface
	eventRepo  eventRepo.EventRepositoryInterface
	memberRepo membershipRepo.MembershipRepositoryInterface
	inviteRepo invitationRepo.InvitationRepositoryInterface
	dispatcher *tasks.Dispatcher
}

// JoinRequestServiceInterface defines the service contract
type JoinRequestServiceInterface interface {
	RequestJoin(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*dto.JoinRequestResponse, *errors.AppError)
	ApproveRequest(ctx context.Context, requestID uuid.UUID, hostID uuid.UUID) *errors.AppError
	DeclineRequest(ctx context.Context, requestID uuid.UUID, hostID uuid.UUID) *errors.AppError
	GetPendingRequests(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID) (*dto.JoinRequestsResponse, *errors.AppError)
}

func NewJoinRequestService(
	repo repository.JoinRequestRepositoryInterface,
	eventRepository eventRepo.EventRepositoryInterface,
	memberRepository membershipRepo.MembershipRepositoryInterface,
	inviteRepository invitationRepo.InvitationRepositoryInterface,
	dispatcher *tasks.Dispatcher,
) JoinRequestServiceInterface {
	return &JoinRequestService{
		repo:       repo,
		eventRepo:  eventRepository,
		memberRepo: memberRepository,
		inviteRepo: inviteRepository,
		dispatcher: dispatcher,
	}
}

// RequestJoin files a pending join request. Only invite-only public events
// accept requests; open events are joined directly and private events are
// invite-only from the host's side.
func (s *JoinRequestService) RequestJoin(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*dto.JoinRequestResponse, *errors.AppError) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	switch event.Visibility {
	case eventEntity.VisibilityPublicInvite:
	case eventEntity.VisibilityPrivate:
		return nil, errors.NewAppError(errors.ErrPrivateEvent, "Private events do not accept join requests", nil)
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Open events can be joined directly", nil)
	}

	// Invite creation pairs every pending invite with an "invited"
	// membership row, so an invited requester holds both. Check the invite
	// first; only host and attendee memberships count as already-a-member.
	hasInvite, err := s.inviteRepo.HasPendingInvite(ctx, eventID, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check invites", err)
	}
	if hasInvite {
		return nil, errors.NewAppError(errors.ErrAlreadyInvited, "You already have a pending invite, respond to it instead", nil)
	}

	membership, err := s.memberRepo.GetByEventAndUser(ctx, eventID, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if membership != nil && membership.Role != membershipEntity.RoleInvited {
		return nil, errors.NewAppError(errors.ErrAlreadyMember, "You already have a membership for this event", nil)
	}

	request, created, err := s.repo.GetOrCreatePending(ctx, eventID, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create join request", err)
	}

	if created {
		s.dispatcher.Dispatch(tasks.DeliverPayload{
			UserID:  event.HostID,
			Title:   "New join request",
			Message: fmt.Sprintf("Someone asked to join %s", event.Title),
			Type:    "join_request",
			Data: map[string]interface{}{
				"request_id": request.ID.String(),
				"event_id":   eventID.String(),
			},
		})
		logger.Info("JoinRequestService:RequestJoin:Created", "request_id", request.ID, "event_id", eventID)
	}

	resp := dto.ToJoinRequestResponse(request)
	return &resp, nil
}

func (s *JoinRequestService) loadForDecision(ctx context.Context, requestID uuid.UUID, hostID uuid.UUID) (*entity.JoinRequest, *eventEntity.Event, *errors.AppError) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load join request", err)
	}
	if request == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Join request not found", nil)
	}

	event, err := s.eventRepo.GetEventByID(ctx, request.EventID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID != hostID {
		return nil, nil, errors.NewAppError(errors.ErrForbidden, "Only the host may decide join requests", nil)
	}

	if request.Status != entity.JoinRequestStatusPending {
		return nil, nil, errors.NewAppError(errors.ErrAlreadyExists, "Join request has already been decided", nil)
	}

	return request, event, nil
}

// ApproveRequest approves a pending request and grants the requester an
// attendee membership.
func (s *JoinRequestService) ApproveRequest(ctx context.Context, requestID uuid.UUID, hostID uuid.UUID) *errors.AppError {
	request, event, appErr := s.loadForDecision(ctx, requestID, hostID)
	if appErr != nil {
		return appErr
	}

	if err := s.repo.Approve(ctx, requestID, request.EventID, request.RequesterID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to approve join request", err)
	}

	s.dispatcher.Dispatch(tasks.DeliverPayload{
		UserID:  request.RequesterID,
		Title:   "Join request approved",
		Message: fmt.Sprintf("Your request to join %s was approved", event.Title),
		Type:    "join_request_decision",
		Data: map[string]interface{}{
			"request_id": requestID.String(),
			"event_id":   request.EventID.String(),
		},
	})

	logger.Info("JoinRequestService:ApproveRequest:Success", "request_id", requestID, "event_id", request.EventID)
	return nil
}

// DeclineRequest declines a pending request. No membership side effect.
func (s *JoinRequestService) DeclineRequest(ctx context.Context, requestID uuid.UUID, hostID uuid.UUID) *errors.AppError {
	request, event, appErr := s.loadForDecision(ctx, requestID, hostID)
	if appErr != nil {
		return appErr
	}

	if err := s.repo.Decline(ctx, requestID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to decline join request", err)
	}

	s.dispatcher.Dispatch(tasks.DeliverPayload{
		UserID:  request.RequesterID,
		Title:   "Join request declined",
		Message: fmt.Sprintf("Your request to join %s was declined", event.Title),
		Type:    "join_request_decision",
		Data: map[string]interface{}{
			"request_id": requestID.String(),
			"event_id":   request.EventID.String(),
		},
	})

	logger.Info("JoinRequestService:DeclineRequest:Success", "request_id", requestID, "event_id", request.EventID)
	return nil
}

// GetPendingRequests lists the host's review queue for an event.
func (s *JoinRequestService) GetPendingRequests(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID) (*dto.JoinRequestsResponse, *errors.AppError) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the host may list join requests", nil)
	}

	requests, err := s.repo.GetPendingByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load join requests", err)
	}
	return dto.ToJoinRequestsResponse(requests), nil
}
