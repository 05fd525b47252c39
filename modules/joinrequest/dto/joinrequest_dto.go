package dto

import (
	"time"

	"artwalk-api/modules/joinrequest/entity"
)

type JoinRequestResponse struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	RequesterID string     `json:"requester_id"`
	Status      string     `json:"status"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type JoinRequestsResponse struct {
	Requests []JoinRequestResponse `json:"requests"`
	Total    int                   `json:"total"`
}

func ToJoinRequestResponse(request *entity.JoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		ID:          request.ID.String(),
		EventID:     request.EventID.String(),
		RequesterID: request.RequesterID.String(),
		Status:      string(request.Status),
		DecidedAt:   request.DecidedAt,
		CreatedAt:   request.CreatedAt,
	}
}

func ToJoinRequestsResponse(requests []entity.JoinRequest) *JoinRequestsResponse {
	items := make([]JoinRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, ToJoinRequestResponse(&requests[i]))
	}
	return &JoinRequestsResponse{Requests: items, Total: len(items)}
}
