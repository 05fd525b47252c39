package repository

import (
	"context"
	"database/sql"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/user/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserRepository struct {
	db database.Database
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// UserRepositoryInterface is the user directory contract consumed by the
// invitation and join-request modules.
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ExistsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, email, display_name, avatar_url, created_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", err)
		return nil, err
	}

	return &user, nil
}

// ExistsBatch resolves many user ids in a single query.
func (r *UserRepository) ExistsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	query := `SELECT id FROM users WHERE id = ANY($1)`

	var found []uuid.UUID
	err := r.db.SelectContext(ctx, &found, query, pq.Array(idStrings))
	if err != nil {
		logger.Error("UserRepository:ExistsBatch", err)
		return nil, err
	}

	for _, id := range found {
		result[id] = true
	}
	return result, nil
}
