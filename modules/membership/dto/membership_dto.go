package dto

import (
	"time"

	"artwalk-api/modules/membership/entity"
)

type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type MembersResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int              `json:"total"`
}

func ToMembersResponse(memberships []entity.Membership) *MembersResponse {
	members := make([]MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, MemberResponse{
			UserID:   m.UserID.String(),
			Role:     string(m.Role),
			JoinedAt: m.CreatedAt,
		})
	}
	return &MembersResponse{Members: members, Total: len(members)}
}
