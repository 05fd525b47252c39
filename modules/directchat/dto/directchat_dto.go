package dto

import (
	"time"

	"artwalk-api/modules/directchat/entity"
)

type OpenChatRequest struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type DirectChatResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DirectChatsResponse struct {
	Chats []DirectChatResponse `json:"chats"`
	Total int                  `json:"total"`
}

type DirectMessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type DirectMessagesResponse struct {
	Messages []DirectMessageResponse `json:"messages"`
	Total    int                     `json:"total"`
}

type ActiveParticipantsResponse struct {
	Participants []string `json:"participants"`
}

func ToDirectChatResponse(chat *entity.DirectChat) DirectChatResponse {
	return DirectChatResponse{
		ID:        chat.ID.String(),
		EventID:   chat.EventID.String(),
		UserA:     chat.UserA.String(),
		UserB:     chat.UserB.String(),
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}
}

func ToDirectChatsResponse(chats []entity.DirectChat) *DirectChatsResponse {
	items := make([]DirectChatResponse, 0, len(chats))
	for i := range chats {
		items = append(items, ToDirectChatResponse(&chats[i]))
	}
	return &DirectChatsResponse{Chats: items, Total: len(items)}
}

func ToDirectMessageResponse(message *entity.DirectMessage) DirectMessageResponse {
	return DirectMessageResponse{
		ID:        message.ID.String(),
		ChatID:    message.ChatID.String(),
		SenderID:  message.SenderID.String(),
		Body:      message.Body,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}
}

func ToDirectMessagesResponse(messages []entity.DirectMessage) *DirectMessagesResponse {
	items := make([]DirectMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, ToDirectMessageResponse(&messages[i]))
	}
	return &DirectMessagesResponse{Messages: items, Total: len(items)}
}
