package repository

import (
	"context"
	"database/sql"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/directchat/entity"

	"github.com/google/uuid"
)

type DirectChatRepository struct {
	db database.Database
}

func NewDirectChatRepository(db database.Database) *DirectChatRepository {
	return &DirectChatRepository{db: db}
}

// DirectChatRepositoryInterface defines the repository contract
type DirectChatRepositoryInterface interface {
	GetOrCreate(ctx context.Context, eventID uuid.UUID, userA uuid.UUID, userB uuid.UUID) (*entity.DirectChat, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DirectChat, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.DirectChat, error)
	InsertMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, recipientID uuid.UUID, body string) (*entity.DirectMessage, error)
	GetMessagesByChatID(ctx context.Context, chatID uuid.UUID) ([]entity.DirectMessage, error)
	CreateLeave(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (bool, error)
	GetLeavesByChatID(ctx context.Context, chatID uuid.UUID) ([]entity.DirectChatLeave, error)
	MarkMessagesRead(ctx context.Context, chatID uuid.UUID, readerID uuid.UUID) error
}

const directChatColumns = `id, event_id, user_a, user_b, created_at, updated_at`
const directMessageColumns = `id, chat_id, sender_id, body, is_read, created_at`

// GetOrCreate resolves the chat for a normalized pair, creating it on
// first use. Callers must pass userA and userB already ordered.
func (r *DirectChatRepository) GetOrCreate(ctx context.Context, eventID uuid.UUID, userA uuid.UUID, userB uuid.UUID) (*entity.DirectChat, error) {
	insert := `
		INSERT INTO direct_chats (event_id, user_a, user_b)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_a, user_b) DO NOTHING
		RETURNING ` + directChatColumns

	var chat entity.DirectChat
	err := r.db.GetContext(ctx, &chat, insert, eventID, userA, userB)
	if err == nil {
		return &chat, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("DirectChatRepository:GetOrCreate:Insert", err)
		return nil, err
	}

	query := `SELECT ` + directChatColumns + ` FROM direct_chats WHERE event_id = $1 AND user_a = $2 AND user_b = $3`
	if err := r.db.GetContext(ctx, &chat, query, eventID, userA, userB); err != nil {
		logger.Error("DirectChatRepository:GetOrCreate:Get", err)
		return nil, err
	}
	return &chat, nil
}

func (r *DirectChatRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DirectChat, error) {
	query := `SELECT ` + directChatColumns + ` FROM direct_chats WHERE id = $1`

	var chat entity.DirectChat
	err := r.db.GetContext(ctx, &chat, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("DirectChatRepository:GetByID:Error:", err)
		return nil, err
	}
	return &chat, nil
}

// GetByUserID lists a user's chats, most recently active first. Chats the
// user has left are excluded from the listing but never deleted.
func (r *DirectChatRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.DirectChat, error) {
	query := `
		SELECT ` + directChatColumns + `
		FROM direct_chats c
		WHERE (c.user_a = $1 OR c.user_b = $1)
		AND NOT EXISTS (
			SELECT 1 FROM direct_chat_leaves l
			WHERE l.chat_id = c.id AND l.user_id = $1
		)
		ORDER BY c.updated_at DESC
	`

	var chats []entity.DirectChat
	err := r.db.SelectContext(ctx, &chats, query, userID)
	if err != nil {
		logger.Error("DirectChatRepository:GetByUserID:Error:", err)
		return nil, err
	}
	return chats, nil
}

// InsertMessage appends a message, bumps the chat's activity stamp, and
// removes the recipient's leave row so the chat reappears for them, all in
// one transaction.
func (r *DirectChatRepository) InsertMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, recipientID uuid.UUID, body string) (*entity.DirectMessage, error) {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("DirectChatRepository:InsertMessage:BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO direct_messages (chat_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING ` + directMessageColumns

	var message entity.DirectMessage
	if err := tx.GetContext(ctx, &message, insert, chatID, senderID, body); err != nil {
		logger.Error("DirectChatRepository:InsertMessage:Insert", err)
		return nil, err
	}

	bump := `UPDATE direct_chats SET updated_at = NOW() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, bump, chatID); err != nil {
		logger.Error("DirectChatRepository:InsertMessage:Bump", err)
		return nil, err
	}

	rejoin := `DELETE FROM direct_chat_leaves WHERE chat_id = $1 AND user_id = $2`
	if _, err := tx.ExecContext(ctx, rejoin, chatID, recipientID); err != nil {
		logger.Error("DirectChatRepository:InsertMessage:Rejoin", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("DirectChatRepository:InsertMessage:Commit", err)
		return nil, err
	}
	return &message, nil
}

func (r *DirectChatRepository) GetMessagesByChatID(ctx context.Context, chatID uuid.UUID) ([]entity.DirectMessage, error) {
	query := `
		SELECT ` + directMessageColumns + `
		FROM direct_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC, id ASC
	`

	var messages []entity.DirectMessage
	err := r.db.SelectContext(ctx, &messages, query, chatID)
	if err != nil {
		logger.Error("DirectChatRepository:GetMessagesByChatID:Error:", err)
		return nil, err
	}
	return messages, nil
}

// CreateLeave records that the user hid this chat. Returns false when a
// leave row already exists.
func (r *DirectChatRepository) CreateLeave(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO direct_chat_leaves (chat_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (chat_id, user_id) DO NOTHING
		RETURNING chat_id
	`

	var returned uuid.UUID
	err := r.db.GetContext(ctx, &returned, query, chatID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("DirectChatRepository:CreateLeave:Error:", err)
		return false, err
	}
	return true, nil
}

func (r *DirectChatRepository) GetLeavesByChatID(ctx context.Context, chatID uuid.UUID) ([]entity.DirectChatLeave, error) {
	query := `SELECT chat_id, user_id, left_at FROM direct_chat_leaves WHERE chat_id = $1`

	var leaves []entity.DirectChatLeave
	err := r.db.SelectContext(ctx, &leaves, query, chatID)
	if err != nil {
		logger.Error("DirectChatRepository:GetLeavesByChatID:Error:", err)
		return nil, err
	}
	return leaves, nil
}

// MarkMessagesRead flags every message the other side sent as read.
func (r *DirectChatRepository) MarkMessagesRead(ctx context.Context, chatID uuid.UUID, readerID uuid.UUID) error {
	query := `
		UPDATE direct_messages
		SET is_read = TRUE
		WHERE chat_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`
	if err := r.db.ExecContext(ctx, query, chatID, readerID); err != nil {
		logger.Error("DirectChatRepository:MarkMessagesRead:Error:", err)
		return err
	}
	return nil
}
