package repository

import (
	"context"
	"database/sql"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/membership/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MembershipRepository handles event_memberships database operations
type MembershipRepository struct {
	DB database.Database
}

func NewMembershipRepository(db database.Database) *MembershipRepository {
	return &MembershipRepository{DB: db}
}

// MembershipRepositoryInterface defines the repository contract
type MembershipRepositoryInterface interface {
	Grant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, role entity.MembershipRole) error
	GetByEventAndUser(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*entity.Membership, error)
	HasRole(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, roles []entity.MembershipRole) (bool, error)
	Revoke(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, expectedRole entity.MembershipRole) (bool, error)
	GetMembersByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Membership, error)
}

// Grant inserts or updates the single membership row for (event, user).
// The unique constraint on the pair is the concurrency guard.
func (r *MembershipRepository) Grant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, role entity.MembershipRole) error {
	query := `
		INSERT INTO event_memberships (event_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET role = $3, updated_at = NOW()
	`

	err := r.DB.ExecContext(ctx, query, eventID, userID, role)
	if err != nil {
		logger.Error("MembershipRepository:Grant", err)
		return err
	}

	return nil
}

func (r *MembershipRepository) GetByEventAndUser(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*entity.Membership, error) {
	query := `
		SELECT id, event_id, user_id, role, created_at, updated_at
		FROM event_memberships
		WHERE event_id = $1 AND user_id = $2
	`

	var membership entity.Membership
	err := r.DB.GetContext(ctx, &membership, query, eventID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MembershipRepository:GetByEventAndUser", err)
		return nil, err
	}

	return &membership, nil
}

func (r *MembershipRepository) HasRole(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, roles []entity.MembershipRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	roleStrings := make([]string, 0, len(roles))
	for _, role := range roles {
		roleStrings = append(roleStrings, string(role))
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_memberships
			WHERE event_id = $1 AND user_id = $2 AND role = ANY($3)
		)
	`

	var exists bool
	err := r.DB.GetContext(ctx, &exists, query, eventID, userID, pq.Array(roleStrings))
	if err != nil {
		logger.Error("MembershipRepository:HasRole", err)
		return false, err
	}

	return exists, nil
}

// Revoke deletes the membership row only when the current role matches the
// expected one. Returns whether a row was removed.
func (r *MembershipRepository) Revoke(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, expectedRole entity.MembershipRole) (bool, error) {
	query := `
		DELETE FROM event_memberships
		WHERE event_id = $1 AND user_id = $2 AND role = $3
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query, eventID, userID, expectedRole)
	if err != nil {
		logger.Error("MembershipRepository:Revoke", err)
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("MembershipRepository:Revoke - RowsAffected", err)
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *MembershipRepository) GetMembersByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Membership, error) {
	query := `
		SELECT id, event_id, user_id, role, created_at, updated_at
		FROM event_memberships
		WHERE event_id = $1
		ORDER BY created_at
	`

	var memberships []entity.Membership
	err := r.DB.SelectContext(ctx, &memberships, query, eventID)
	if err != nil {
		logger.Error("MembershipRepository:GetMembersByEventID", err)
		return nil, err
	}

	return memberships, nil
}
