package dto

import (
	"time"

	"artwalk-api/modules/invitation/entity"
)

// CreateInvitesRequest for inviting users to an event
type CreateInvitesRequest struct {
	InviteeIDs []string `json:"invitee_ids" validate:"required"`
}

type InviteResponse struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	InviterID   string     `json:"inviter_id"`
	InviteeID   string     `json:"invitee_id"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type InvitesResponse struct {
	Invites []InviteResponse `json:"invites"`
	Total   int              `json:"total"`
}

func ToInviteResponse(invite *entity.Invite) InviteResponse {
	return InviteResponse{
		ID:          invite.ID.String(),
		EventID:     invite.EventID.String(),
		InviterID:   invite.InviterID.String(),
		InviteeID:   invite.InviteeID.String(),
		Status:      string(invite.Status),
		RespondedAt: invite.RespondedAt,
		CreatedAt:   invite.CreatedAt,
	}
}

func ToInvitesResponse(invites []entity.Invite) *InvitesResponse {
	resp := &InvitesResponse{Invites: make([]InviteResponse, 0, len(invites))}
	for i := range invites {
		resp.Invites = append(resp.Invites, ToInviteResponse(&invites[i]))
	}
	resp.Total = len(resp.Invites)
	return resp
}
