package repository

import (
	"context"
	"database/sql"
	"time"

	"artwalk-api/core/database"
	"artwalk-api/core/logger"
	"artwalk-api/modules/invitation/entity"
	membershipEntity "artwalk-api/modules/membership/entity"

	"github.com/google/uuid"
)

type InvitationRepository struct {
	db database.Database
}

func NewInvitationRepository(db database.Database) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// InvitationRepositoryInterface defines the repository contract
type InvitationRepositoryInterface interface {
	CreateBatch(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) ([]entity.Invite, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invite, error)
	HasPendingInvite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error)
	Accept(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error
	Decline(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error
	GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.Invite, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Invite, error)
}

const inviteColumns = `id, event_id, inviter_id, invitee_id, status, responded_at, created_at, updated_at`

// CreateBatch inserts one pending invite per invitee plus the paired INVITED
// membership row, all in one transaction. Existing invites are left alone
// (ON CONFLICT DO NOTHING), so re-invoking with overlapping ids only adds
// the new ones.
func (r *InvitationRepository) CreateBatch(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) ([]entity.Invite, error) {
	if len(inviteeIDs) == 0 {
		return nil, nil
	}

	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("InvitationRepository:CreateBatch:BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	insertInvite := `
		INSERT INTO invites (event_id, inviter_id, invitee_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, invitee_id) DO NOTHING
		RETURNING ` + inviteColumns

	// DO NOTHING: an attendee or host row must not be downgraded to invited.
	insertMembership := `
		INSERT INTO event_memberships (event_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	created := make([]entity.Invite, 0, len(inviteeIDs))
	for _, inviteeID := range inviteeIDs {
		var invite entity.Invite
		err := tx.GetContext(ctx, &invite, insertInvite, eventID, inviterID, inviteeID, entity.InviteStatusPending)
		if err != nil {
			if err == sql.ErrNoRows {
				// Invite already exists for this pair; superset semantics.
				continue
			}
			logger.Error("InvitationRepository:CreateBatch:InsertInvite", err)
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, insertMembership, eventID, inviteeID, membershipEntity.RoleInvited); err != nil {
			logger.Error("InvitationRepository:CreateBatch:InsertMembership", err)
			return nil, err
		}

		created = append(created, invite)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("InvitationRepository:CreateBatch:Commit", err)
		return nil, err
	}

	return created, nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE id = $1`

	var invite entity.Invite
	err := r.db.GetContext(ctx, &invite, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InvitationRepository:GetByID", err)
		return nil, err
	}

	return &invite, nil
}

func (r *InvitationRepository) HasPendingInvite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invites
			WHERE event_id = $1 AND invitee_id = $2 AND status = 'pending'
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, eventID, userID)
	if err != nil {
		logger.Error("InvitationRepository:HasPendingInvite", err)
		return false, err
	}

	return exists, nil
}

// Accept marks the invite accepted and promotes the invitee to attendee in
// one transaction. The membership write is an upsert so a stale or missing
// INVITED row cannot fail the promotion.
func (r *InvitationRepository) Accept(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("InvitationRepository:Accept:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	updateInvite := `
		UPDATE invites
		SET status = $2, responded_at = $3, updated_at = $3
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, updateInvite, inviteID, entity.InviteStatusAccepted, now); err != nil {
		logger.Error("InvitationRepository:Accept:UpdateInvite", err)
		return err
	}

	upsertMembership := `
		INSERT INTO event_memberships (event_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO UPDATE SET role = $3, updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, upsertMembership, eventID, inviteeID, membershipEntity.RoleAttendee); err != nil {
		logger.Error("InvitationRepository:Accept:UpsertMembership", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("InvitationRepository:Accept:Commit", err)
		return err
	}

	return nil
}

// Decline marks the invite declined and removes the provisional INVITED
// membership row. Attendance is not implied by a declined invite.
func (r *InvitationRepository) Decline(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("InvitationRepository:Decline:BeginTx", err)
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	updateInvite := `
		UPDATE invites
		SET status = $2, responded_at = $3, updated_at = $3
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, updateInvite, inviteID, entity.InviteStatusDeclined, now); err != nil {
		logger.Error("InvitationRepository:Decline:UpdateInvite", err)
		return err
	}

	deleteMembership := `
		DELETE FROM event_memberships
		WHERE event_id = $1 AND user_id = $2 AND role = $3
	`
	if _, err := tx.ExecContext(ctx, deleteMembership, eventID, inviteeID, membershipEntity.RoleInvited); err != nil {
		logger.Error("InvitationRepository:Decline:DeleteMembership", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("InvitationRepository:Decline:Commit", err)
		return err
	}

	return nil
}

// GetPendingByInviteeID gets all pending invitations for a user
func (r *InvitationRepository) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.Invite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM invites
		WHERE invitee_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`

	var invites []entity.Invite
	err := r.db.SelectContext(ctx, &invites, query, inviteeID)
	if err != nil {
		logger.Error("InvitationRepository:GetPendingByInviteeID", err)
		return nil, err
	}

	return invites, nil
}

func (r *InvitationRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Invite, error) {
	query := `
		SELECT ` + inviteColumns + `
		FROM invites
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	var invites []entity.Invite
	err := r.db.SelectContext(ctx, &invites, query, eventID)
	if err != nil {
		logger.Error("InvitationRepository:GetByEventID", err)
		return nil, err
	}

	return invites, nil
}
