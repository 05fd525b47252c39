package dto

import (
	"time"

	"artwalk-api/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event
type CreateEventRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	Visibility      string   `json:"visibility" validate:"required"`
	StartsAt        string   `json:"starts_at"` // RFC3339
	StartLocationID string   `json:"start_location_id" validate:"required"`
	StopLocationIDs []string `json:"stop_location_ids"` // ordered
}

// UpdateEventRequest for updating event details. A non-nil stop list
// replaces the whole route.
type UpdateEventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Visibility      string    `json:"visibility"`
	StartsAt        string    `json:"starts_at"`
	StartLocationID string    `json:"start_location_id"`
	StopLocationIDs *[]string `json:"stop_location_ids"`
}

// ===================== Response DTOs =====================

type StopResponse struct {
	LocationID string `json:"location_id"`
	Position   int    `json:"position"`
}

type EventResponse struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	HostID          string         `json:"host_id"`
	Visibility      string         `json:"visibility"`
	StartsAt        time.Time      `json:"starts_at"`
	StartLocationID string         `json:"start_location_id"`
	Stops           []StopResponse `json:"stops"`
	CreatedAt       time.Time      `json:"created_at"`
}

func ToEventResponse(event *entity.Event, stops []entity.EventStop) *EventResponse {
	resp := &EventResponse{
		ID:              event.ID.String(),
		Slug:            event.Slug,
		Title:           event.Title,
		HostID:          event.HostID.String(),
		Visibility:      string(event.Visibility),
		StartsAt:        event.StartsAt,
		StartLocationID: event.StartLocationID.String(),
		Stops:           make([]StopResponse, 0, len(stops)),
		CreatedAt:       event.CreatedAt,
	}
	if event.Description != nil {
		resp.Description = *event.Description
	}
	for _, stop := range stops {
		resp.Stops = append(resp.Stops, StopResponse{
			LocationID: stop.LocationID.String(),
			Position:   stop.Position,
		})
	}
	return resp
}
