package service

import (
	"context"
	"strings"

	"artwalk-api/core/errors"
	"artwalk-api/core/logger"
	"artwalk-api/modules/directchat/dto"
	"artwalk-api/modules/directchat/entity"
	"artwalk-api/modules/directchat/repository"
	membershipEntity "artwalk-api/modules/membership/entity"
	membershipRepo "artwalk-api/modules/membership/repository"

	"github.com/google/uuid"
)

const maxDirectMessageLength = 500

// DirectChatService manages one-on-one chats between members of the same
// event. Leaving hides a chat; a new message from the other side brings it
// back.
type DirectChatService struct {
	repo       repository.DirectChatRepositoryInterface
	memberRepo membershipRepo.MembershipRepositoryInterface
}

// DirectChatServiceInterface defines the service contract
type DirectChatServiceInterface interface {
	OpenChat(ctx context.Context, requesterID uuid.UUID, req *dto.OpenChatRequest) (*dto.DirectChatResponse, *errors.AppError)
	SendMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.DirectMessageResponse, *errors.AppError)
	LeaveChat(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) *errors.AppError
	GetActiveParticipants(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (*dto.ActiveParticipantsResponse, *errors.AppError)
	GetChats(ctx context.Context, userID uuid.UUID) (*dto.DirectChatsResponse, *errors.AppError)
	GetMessages(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (*dto.DirectMessagesResponse, *errors.AppError)
	MarkRead(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) *errors.AppError
}

func NewDirectChatService(
	repo repository.DirectChatRepositoryInterface,
	memberRepository membershipRepo.MembershipRepositoryInterface,
) DirectChatServiceInterface {
	return &DirectChatService{
		repo:       repo,
		memberRepo: memberRepository,
	}
}

// OpenChat finds or creates the chat between the requester and another
// event member. Both sides must hold a host or attendee membership.
func (s *DirectChatService) OpenChat(ctx context.Context, requesterID uuid.UUID, req *dto.OpenChatRequest) (*dto.DirectChatResponse, *errors.AppError) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid event id", nil)
	}
	otherID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid user id", nil)
	}
	if otherID == requesterID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cannot open a chat with yourself", nil)
	}

	memberRoles := []membershipEntity.MembershipRole{membershipEntity.RoleHost, membershipEntity.RoleAttendee}
	for _, userID := range []uuid.UUID{requesterID, otherID} {
		isMember, err := s.memberRepo.HasRole(ctx, eventID, userID, memberRoles)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
		}
		if !isMember {
			return nil, errors.NewAppError(errors.ErrForbidden, "Both users must be members of the event", nil)
		}
	}

	userA, userB := entity.NormalizePair(requesterID, otherID)
	chat, err := s.repo.GetOrCreate(ctx, eventID, userA, userB)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to open chat", err)
	}

	resp := dto.ToDirectChatResponse(chat)
	return &resp, nil
}

func (s *DirectChatService) loadChatFor(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (*entity.DirectChat, *errors.AppError) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load chat", err)
	}
	if chat == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Chat not found", nil)
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not a participant of this chat", nil)
	}
	return chat, nil
}

// SendMessage appends a message and un-hides the chat for the recipient if
// they had left it.
func (s *DirectChatService) SendMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.DirectMessageResponse, *errors.AppError) {
	chat, appErr := s.loadChatFor(ctx, chatID, senderID)
	if appErr != nil {
		return nil, appErr
	}

	body := strings.TrimSpace(req.Body)
	if body == "" || len([]rune(body)) > maxDirectMessageLength {
		return nil, errors.NewAppError(errors.ErrInvalidMessage, "Message must be 1 to 500 characters", nil)
	}

	message, err := s.repo.InsertMessage(ctx, chatID, senderID, chat.OtherParticipant(senderID), body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to send message", err)
	}

	resp := dto.ToDirectMessageResponse(message)
	return &resp, nil
}

// LeaveChat hides the chat for the user. Leaving twice is reported back as
// AlreadyLeft so the caller can tell the user nothing changed.
func (s *DirectChatService) LeaveChat(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) *errors.AppError {
	if _, appErr := s.loadChatFor(ctx, chatID, userID); appErr != nil {
		return appErr
	}

	created, err := s.repo.CreateLeave(ctx, chatID, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to leave chat", err)
	}
	if !created {
		return errors.NewAppError(errors.ErrAlreadyLeft, "You have already left this chat", nil)
	}

	logger.Info("DirectChatService:LeaveChat:Success", "chat_id", chatID, "user_id", userID)
	return nil
}

// GetActiveParticipants returns the chat members who have not left it.
func (s *DirectChatService) GetActiveParticipants(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (*dto.ActiveParticipantsResponse, *errors.AppError) {
	chat, appErr := s.loadChatFor(ctx, chatID, userID)
	if appErr != nil {
		return nil, appErr
	}

	leaves, err := s.repo.GetLeavesByChatID(ctx, chatID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load chat state", err)
	}

	left := make(map[uuid.UUID]bool, len(leaves))
	for _, leave := range leaves {
		left[leave.UserID] = true
	}

	participants := make([]string, 0, 2)
	for _, id := range []uuid.UUID{chat.UserA, chat.UserB} {
		if !left[id] {
			participants = append(participants, id.String())
		}
	}
	return &dto.ActiveParticipantsResponse{Participants: participants}, nil
}

// GetChats lists the user's chats, most recently active first.
func (s *DirectChatService) GetChats(ctx context.Context, userID uuid.UUID) (*dto.DirectChatsResponse, *errors.AppError) {
	chats, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load chats", err)
	}
	return dto.ToDirectChatsResponse(chats), nil
}

func (s *DirectChatService) GetMessages(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (*dto.DirectMessagesResponse, *errors.AppError) {
	if _, appErr := s.loadChatFor(ctx, chatID, userID); appErr != nil {
		return nil, appErr
	}

	messages, err := s.repo.GetMessagesByChatID(ctx, chatID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load messages", err)
	}
	return dto.ToDirectMessagesResponse(messages), nil
}

// MarkRead flags the counterpart's messages as read.
func (s *DirectChatService) MarkRead(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) *errors.AppError {
	if _, appErr := s.loadChatFor(ctx, chatID, userID); appErr != nil {
		return appErr
	}

	if err := s.repo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark messages read", err)
	}
	return nil
}
