package repository

import (
	"context"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/chat/entity"

	"github.com/google/uuid"
)

type ChatRepository struct {
	db database.Database
}

func NewChatRepository(db database.Database) *ChatRepository {
	return &ChatRepository{db: db}
}

// ChatRepositoryInterface defines the repository contract
type ChatRepositoryInterface interface {
	Insert(ctx context.Context, eventID uuid.UUID, authorID uuid.UUID, body string) (*entity.ChatMessage, error)
	TrimToNewest(ctx context.Context, eventID uuid.UUID, keep int) error
	GetRecentByEventID(ctx context.Context, eventID uuid.UUID, limit int) ([]entity.ChatMessage, error)
}

const chatColumns = `id, event_id, author_id, body, created_at`

func (r *ChatRepository) Insert(ctx context.Context, eventID uuid.UUID, authorID uuid.UUID, body string) (*entity.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (event_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING ` + chatColumns

	var message entity.ChatMessage
	err := r.db.GetContext(ctx, &message, query, eventID, authorID, body)
	if err != nil {
		logger.Error("ChatRepository:Insert:Error:", err)
		return nil, err
	}
	return &message, nil
}

// TrimToNewest deletes every message for the event outside the keep most
// recent ones. Recency is created_at descending with id as the tiebreak, so
// two messages in the same clock tick trim deterministically.
func (r *ChatRepository) TrimToNewest(ctx context.Context, eventID uuid.UUID, keep int) error {
	query := `
		DELETE FROM chat_messages
		WHERE event_id = $1
		AND id NOT IN (
			SELECT id FROM chat_messages
			WHERE event_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		)
	`
	if err := r.db.ExecContext(ctx, query, eventID, keep); err != nil {
		logger.Error("ChatRepository:TrimToNewest:Error:", err)
		return err
	}
	return nil
}

// GetRecentByEventID returns the limit most recent messages in
// chronological order for display.
func (r *ChatRepository) GetRecentByEventID(ctx context.Context, eventID uuid.UUID, limit int) ([]entity.ChatMessage, error) {
	query := `
		SELECT ` + chatColumns + ` FROM (
			SELECT ` + chatColumns + ` FROM chat_messages
			WHERE event_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, id ASC
	`

	var messages []entity.ChatMessage
	err := r.db.SelectContext(ctx, &messages, query, eventID, limit)
	if err != nil {
		logger.Error("ChatRepository:GetRecentByEventID:Error:", err)
		return nil, err
	}
	return messages, nil
}
