package repository

import (
	"context"
	"database/sql"
	"fmt"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/core/params"
	"artwalk-api/modules/event/entity"
	membershipEntity "artwalk-api/modules/membership/entity"

	coreEntity "artwalk-api/core/entity"

	"github.com/google/uuid"
)

// EventRepository handles event and event_stops database operations
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	CreateEventWithStops(ctx context.Context, event *entity.Event, stops []entity.EventStop) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*entity.Event, error)
	GetStopsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.EventStop, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	ReplaceStops(ctx context.Context, eventID uuid.UUID, stops []entity.EventStop) error
	SoftDeleteEvent(ctx context.Context, id uuid.UUID) error
	ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[entity.Event], error)
}

const eventColumns = `id, slug, title, description, host_id, visibility, starts_at, start_location_id, is_deleted, created_at, updated_at`

// CreateEventWithStops inserts the event, its stops and the seed host
// membership in one transaction.
func (r *EventRepository) CreateEventWithStops(ctx context.Context, event *entity.Event, stops []entity.EventStop) (*entity.Event, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:CreateEventWithStops:BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	insertEvent := `
		INSERT INTO events (slug, title, description, host_id, visibility, starts_at, start_location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	var created entity.Event
	err = tx.GetContext(ctx, &created, insertEvent,
		event.Slug, event.Title, event.Description, event.HostID,
		event.Visibility, event.StartsAt, event.StartLocationID)
	if err != nil {
		logger.Error("EventRepository:CreateEventWithStops:InsertEvent", err)
		return nil, err
	}

	insertStop := `
		INSERT INTO event_stops (event_id, location_id, position)
		VALUES ($1, $2, $3)
	`
	for _, stop := range stops {
		if _, err := tx.ExecContext(ctx, insertStop, created.ID, stop.LocationID, stop.Position); err != nil {
			logger.Error("EventRepository:CreateEventWithStops:InsertStop", err)
			return nil, err
		}
	}

	seedHost := `
		INSERT INTO event_memberships (event_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, seedHost, created.ID, created.HostID, membershipEntity.RoleHost); err != nil {
		logger.Error("EventRepository:CreateEventWithStops:SeedHost", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:CreateEventWithStops:Commit", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetEventBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventBySlug", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetStopsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.EventStop, error) {
	query := `
		SELECT id, event_id, location_id, position, created_at
		FROM event_stops
		WHERE event_id = $1
		ORDER BY position
	`

	var stops []entity.EventStop
	err := r.DB.SelectContext(ctx, &stops, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetStopsByEventID", err)
		return nil, err
	}

	return stops, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, visibility = $4, starts_at = $5,
		    start_location_id = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.Visibility,
		event.StartsAt, event.StartLocationID)
	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

// ReplaceStops rewrites the stop list from scratch: delete everything, then
// reinsert. Simple and race-free inside the transaction; a diff-based update
// would change observable row identity.
func (r *EventRepository) ReplaceStops(ctx context.Context, eventID uuid.UUID, stops []entity.EventStop) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:ReplaceStops:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_stops WHERE event_id = $1`, eventID); err != nil {
		logger.Error("EventRepository:ReplaceStops:Delete", err)
		return err
	}

	insertStop := `
		INSERT INTO event_stops (event_id, location_id, position)
		VALUES ($1, $2, $3)
	`
	for _, stop := range stops {
		if _, err := tx.ExecContext(ctx, insertStop, eventID, stop.LocationID, stop.Position); err != nil {
			logger.Error("EventRepository:ReplaceStops:Insert", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("EventRepository:ReplaceStops:Commit", err)
		return err
	}

	return nil
}

func (r *EventRepository) SoftDeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE events SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:SoftDeleteEvent", err)
		return err
	}
	return nil
}

// ListUpcoming returns future, non-deleted events in the public tiers.
func (r *EventRepository) ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[entity.Event], error) {
	offset := (queryParams.PageNumber - 1) * queryParams.PageSize

	baseQuery := `
		FROM events
		WHERE is_deleted = FALSE
		AND starts_at > NOW()
		AND visibility IN ('public_open', 'public_invite')
	`

	args := []interface{}{}
	argIndex := 1
	if queryParams.Search != "" {
		baseQuery += ` AND title ILIKE $1`
		args = append(args, "%"+queryParams.Search+"%")
		argIndex++
	}

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, args...)
	if err != nil {
		logger.Error("EventRepository:ListUpcoming:Count", err)
		return nil, err
	}

	dataQuery := `SELECT ` + eventColumns + " " + baseQuery + `
		ORDER BY starts_at ASC
		LIMIT $` + fmt.Sprintf("%d", argIndex) + ` OFFSET $` + fmt.Sprintf("%d", argIndex+1)
	args = append(args, queryParams.PageSize, offset)

	var events []entity.Event
	err = r.DB.SelectContext(ctx, &events, dataQuery, args...)
	if err != nil {
		logger.Error("EventRepository:ListUpcoming:Select", err)
		return nil, err
	}

	return &coreEntity.Pagination[entity.Event]{
		Items:      events,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}
