package repository

import (
	"context"
	"database/sql"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/location/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type LocationRepository struct {
	db database.Database
}

func NewLocationRepository(db database.Database) *LocationRepository {
	return &LocationRepository{db: db}
}

// LocationRepositoryInterface is the location directory contract consumed
// by the event module.
type LocationRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)
	ExistsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

func (r *LocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	query := `
		SELECT id, name, address, latitude, longitude, created_at
		FROM locations
		WHERE id = $1
	`

	var location entity.Location
	err := r.db.GetContext(ctx, &location, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("LocationRepository:GetByID", err)
		return nil, err
	}

	return &location, nil
}

// ExistsBatch resolves many location ids in a single query.
func (r *LocationRepository) ExistsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	query := `SELECT id FROM locations WHERE id = ANY($1)`

	var found []uuid.UUID
	err := r.db.SelectContext(ctx, &found, query, pq.Array(idStrings))
	if err != nil {
		logger.Error("LocationRepository:ExistsBatch", err)
		return nil, err
	}

	for _, id := range found {
		result[id] = true
	}
	return result, nil
}
