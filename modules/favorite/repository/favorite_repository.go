package repository

import (
	"context"
	"database/sql"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/favorite/entity"

	"github.com/google/uuid"
)

type FavoriteRepository struct {
	db database.Database
}

func NewFavoriteRepository(db database.Database) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// FavoriteRepositoryInterface defines the repository contract
type FavoriteRepositoryInterface interface {
	Create(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	Delete(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error)
}

// Create bookmarks the event. Re-favoriting is a no-op.
func (r *FavoriteRepository) Create(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	query := `
		INSERT INTO favorites (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	if err := r.db.ExecContext(ctx, query, eventID, userID); err != nil {
		logger.Error("FavoriteRepository:Create:Error:", err)
		return err
	}
	return nil
}

// Delete removes the bookmark and reports whether a row was removed, so
// callers can tell "removed" apart from "was never favorited".
func (r *FavoriteRepository) Delete(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM favorites
		WHERE event_id = $1 AND user_id = $2
		RETURNING event_id
	`

	var returned uuid.UUID
	err := r.db.GetContext(ctx, &returned, query, eventID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("FavoriteRepository:Delete:Error:", err)
		return false, err
	}
	return true, nil
}

func (r *FavoriteRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	query := `
		SELECT event_id, user_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var favorites []entity.Favorite
	err := r.db.SelectContext(ctx, &favorites, query, userID)
	if err != nil {
		logger.Error("FavoriteRepository:GetByUserID:Error:", err)
		return nil, err
	}
	return favorites, nil
}
