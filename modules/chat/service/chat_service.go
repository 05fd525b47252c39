package service

import (
	"context"
	"strings"

	"artwalk-api/core/errors"
	"artwalk-api/modules/chat/dto"
	"artwalk-api/modules/chat/repository"
	eventRepo "artwalk-api/modules/event/repository"
	membershipEntity "artwalk-api/modules/membership/entity"
	membershipRepo "artwalk-api/modules/membership/repository"

	"github.com/google/uuid"
)

const (
	maxMessageLength = 300
	retainedMessages = 20
)

// ChatService is the event chat log. Posting trims the log to the newest
// retainedMessages rows in the same request, so the log stays bounded
// without a background sweep.
type ChatService struct {
	repo       repository.ChatRepositoryInterface
	eventRepo  eventRepo.EventRepositoryInterface
	memberRepo membershipRepo.MembershipRepositoryInterface
}

// ChatServiceInterface defines the service contract
type ChatServiceInterface interface {
	PostMessage(ctx context.Context, eventID uuid.UUID, authorID uuid.UUID, req *dto.PostMessageRequest) (*dto.ChatMessageResponse, *errors.AppError)
	GetMessages(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*dto.ChatMessagesResponse, *errors.AppError)
}

func NewChatService(
	repo repository.ChatRepositoryInterface,
	eventRepository eventRepo.EventRepositoryInterface,
	memberRepository membershipRepo.MembershipRepositoryInterface,
) ChatServiceInterface {
	return &ChatService{
		repo:       repo,
		eventRepo:  eventRepository,
		memberRepo: memberRepository,
	}
}

func (s *ChatService) requireMember(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	isMember, err := s.memberRepo.HasRole(ctx, eventID, userID,
		[]membershipEntity.MembershipRole{membershipEntity.RoleHost, membershipEntity.RoleAttendee})
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !isMember {
		return errors.NewAppError(errors.ErrNotAMember, "Only event members may use the chat", nil)
	}
	return nil
}

// PostMessage appends a message to the event chat and trims the log.
// Concurrent posts to the same event can transiently leave extra rows;
// the next post trims them away.
func (s *ChatService) PostMessage(ctx context.Context, eventID uuid.UUID, authorID uuid.UUID, req *dto.PostMessageRequest) (*dto.ChatMessageResponse, *errors.AppError) {
	if appErr := s.requireMember(ctx, eventID, authorID); appErr != nil {
		return nil, appErr
	}

	body := strings.TrimSpace(req.Body)
	if body == "" || len([]rune(body)) > maxMessageLength {
		return nil, errors.NewAppError(errors.ErrInvalidMessage, "Message must be 1 to 300 characters", nil)
	}

	message, err := s.repo.Insert(ctx, eventID, authorID, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to post message", err)
	}

	if err := s.repo.TrimToNewest(ctx, eventID, retainedMessages); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to trim chat log", err)
	}

	resp := dto.ToChatMessageResponse(message)
	return &resp, nil
}

// GetMessages returns the retained log oldest-first.
func (s *ChatService) GetMessages(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*dto.ChatMessagesResponse, *errors.AppError) {
	if appErr := s.requireMember(ctx, eventID, userID); appErr != nil {
		return nil, appErr
	}

	messages, err := s.repo.GetRecentByEventID(ctx, eventID, retainedMessages)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load messages", err)
	}
	return dto.ToChatMessagesResponse(messages), nil
}
