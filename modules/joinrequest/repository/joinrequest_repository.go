package repository

import (
	"context"
	"database/sql"
	"time"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/joinrequest/entity"
	membershipEntity "artwalk-api/modules/membership/entity"

	"github.com/google/uuid"
)

type JoinRequestRepository struct {
	db database.Database
}

func NewJoinRequestRepository(db database.Database) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

// JoinRequestRepositoryInterface defines the repository contract
type JoinRequestRepositoryInterface interface {
	GetOrCreatePending(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*entity.JoinRequest, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error)
	Approve(ctx context.Context, requestID uuid.UUID, eventID uuid.UUID, requesterID uuid.UUID) error
	Decline(ctx context.Context, requestID uuid.UUID) error
	GetPendingByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.JoinRequest, error)
}

const joinRequestColumns = `id, event_id, requester_id, status, decided_at, created_at, updated_at`

// GetOrCreatePending inserts a pending request, or revives a declined one.
// The bool reports whether a new pending request came out of the call. An
// existing pending or approved row is returned untouched.
func (r *JoinRequestRepository) GetOrCreatePending(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*entity.JoinRequest, bool, error) {
	insert := `
		INSERT INTO join_requests (event_id, requester_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, requester_id) DO UPDATE
		SET status = EXCLUDED.status, decided_at = NULL, updated_at = NOW()
		WHERE join_requests.status = $4
		RETURNING ` + joinRequestColumns

	var request entity.JoinRequest
	err := r.db.GetContext(ctx, &request, insert, eventID, requesterID,
		entity.JoinRequestStatusPending, entity.JoinRequestStatusDeclined)
	if err == nil {
		return &request, true, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("JoinRequestRepository:GetOrCreatePending:Insert", err)
		return nil, false, err
	}

	// A pending or approved row already exists for this pair.
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE event_id = $1 AND requester_id = $2`
	if err := r.db.GetContext(ctx, &request, query, eventID, requesterID); err != nil {
		logger.Error("JoinRequestRepository:GetOrCreatePending:Get", err)
		return nil, false, err
	}
	return &request, false, nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`

	var request entity.JoinRequest
	err := r.db.GetContext(ctx, &request, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("JoinRequestRepository:GetByID:Error:", err)
		return nil, err
	}
	return &request, nil
}

// Approve flips the request to approved and grants the requester an
// attendee membership, both in one transaction.
func (r *JoinRequestRepository) Approve(ctx context.Context, requestID uuid.UUID, eventID uuid.UUID, requesterID uuid.UUID) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("JoinRequestRepository:Approve:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	updateRequest := `
		UPDATE join_requests
		SET status = $1, decided_at = $2, updated_at = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, updateRequest, entity.JoinRequestStatusApproved, now, requestID); err != nil {
		logger.Error("JoinRequestRepository:Approve:UpdateRequest", err)
		return err
	}

	// A membership row may already exist from a racing invite; promote it.
	upsertMembership := `
		INSERT INTO event_memberships (event_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, upsertMembership, eventID, requesterID, membershipEntity.RoleAttendee); err != nil {
		logger.Error("JoinRequestRepository:Approve:UpsertMembership", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("JoinRequestRepository:Approve:Commit", err)
		return err
	}
	return nil
}

// Decline flips the request to declined. No membership side effect.
func (r *JoinRequestRepository) Decline(ctx context.Context, requestID uuid.UUID) error {
	query := `
		UPDATE join_requests
		SET status = $1, decided_at = $2, updated_at = $2
		WHERE id = $3
	`
	if err := r.db.ExecContext(ctx, query, entity.JoinRequestStatusDeclined, time.Now(), requestID); err != nil {
		logger.Error("JoinRequestRepository:Decline:Error:", err)
		return err
	}
	return nil
}

func (r *JoinRequestRepository) GetPendingByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.JoinRequest, error) {
	query := `
		SELECT ` + joinRequestColumns + `
		FROM join_requests
		WHERE event_id = $1 AND status = $2
		ORDER BY created_at ASC
	`

	var requests []entity.JoinRequest
	err := r.db.SelectContext(ctx, &requests, query, eventID, entity.JoinRequestStatusPending)
	if err != nil {
		logger.Error("JoinRequestRepository:GetPendingByEventID:Error:", err)
		return nil, err
	}
	return requests, nil
}
