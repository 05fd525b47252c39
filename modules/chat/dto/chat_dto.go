package dto

import (
	"time"

	"artwalk-api/modules/chat/entity"
)

type PostMessageRequest struct {
	Body string `json:"body"`
}

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessagesResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
	Total    int                   `json:"total"`
}

func ToChatMessageResponse(message *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        message.ID.String(),
		EventID:   message.EventID.String(),
		AuthorID:  message.AuthorID.String(),
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}

func ToChatMessagesResponse(messages []entity.ChatMessage) *ChatMessagesResponse {
	items := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, ToChatMessageResponse(&messages[i]))
	}
	return &ChatMessagesResponse{Messages: items, Total: len(items)}
}
