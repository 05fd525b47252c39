package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	coreEntity "artwalk-api/core/entity"
	"artwalk-api/core/errors"
	"artwalk-api/core/logger"
	"artwalk-api/core/params"
	"artwalk-api/core/utils"
	"artwalk-api/modules/event/dto"
	"artwalk-api/modules/event/entity"
	"artwalk-api/modules/event/repository"
	invitationRepo "artwalk-api/modules/invitation/repository"
	locationRepo "artwalk-api/modules/location/repository"
	membershipEntity "artwalk-api/modules/membership/entity"
	membershipRepo "artwalk-api/modules/membership/repository"
	membershipService "artwalk-api/modules/membership/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	maxTitleLength = 120
	cacheTTL       = 5 * time.Minute
)

// EventService handles event aggregate business logic
type EventService struct {
	repo         repository.EventRepositoryInterface
	locationRepo locationRepo.LocationRepositoryInterface
	memberRepo   membershipRepo.MembershipRepositoryInterface
	inviteRepo   invitationRepo.InvitationRepositoryInterface
	cache        *redis.Client
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID) *errors.AppError
	ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[entity.Event], *errors.AppError)
}

func NewEventService(
	repo repository.EventRepositoryInterface,
	locationRepository locationRepo.LocationRepositoryInterface,
	memberRepository membershipRepo.MembershipRepositoryInterface,
	inviteRepository invitationRepo.InvitationRepositoryInterface,
	cache *redis.Client,
) EventServiceInterface {
	return &EventService{
		repo:         repo,
		locationRepo: locationRepository,
		memberRepo:   memberRepository,
		inviteRepo:   inviteRepository,
		cache:        cache,
	}
}

// cachedEventDetail is the payload stored under the slug cache key.
type cachedEventDetail struct {
	Event *entity.Event      `json:"event"`
	Stops []entity.EventStop `json:"stops"`
}

func eventCacheKey(slug string) string {
	return "event:slug:" + slug
}

// validateRoute checks the start location and ordered stops: every id must
// resolve in the location directory, and a location may appear at most once
// per event.
func (s *EventService) validateRoute(ctx context.Context, startLocationID uuid.UUID, stopIDs []uuid.UUID) *errors.AppError {
	seen := map[uuid.UUID]bool{startLocationID: true}
	for _, id := range stopIDs {
		if seen[id] {
			return errors.NewAppError(errors.ErrInvalidInput, "A location may appear at most once per event", nil)
		}
		seen[id] = true
	}

	all := append([]uuid.UUID{startLocationID}, stopIDs...)
	exists, err := s.locationRepo.ExistsBatch(ctx, all)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to validate locations", err)
	}
	for _, id := range all {
		if !exists[id] {
			return errors.NewAppError(errors.ErrInvalidInput, "Unknown location: "+id.String(), nil)
		}
	}
	return nil
}

func parseStopIDs(raw []string) ([]uuid.UUID, *errors.AppError) {
	stops := make([]uuid.UUID, 0, len(raw))
	for _, idStr := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid location id: "+idStr, nil)
		}
		stops = append(stops, id)
	}
	return stops, nil
}

func buildStops(stopIDs []uuid.UUID) []entity.EventStop {
	stops := make([]entity.EventStop, 0, len(stopIDs))
	for i, id := range stopIDs {
		stops = append(stops, entity.EventStop{LocationID: id, Position: i + 1})
	}
	return stops
}

// CreateEvent creates the aggregate: event row, ordered stops and the seed
// host membership, in one transaction.
func (s *EventService) CreateEvent(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > maxTitleLength {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Title must be 1-120 characters", nil)
	}

	visibility := entity.EventVisibility(req.Visibility)
	if !visibility.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid visibility tier", nil)
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time format", err)
	}

	startLocationID, err := uuid.Parse(req.StartLocationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start location id", nil)
	}

	stopIDs, appErr := parseStopIDs(req.StopLocationIDs)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := s.validateRoute(ctx, startLocationID, stopIDs); appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		Slug:            utils.GenerateSlug(title),
		Title:           title,
		HostID:          hostID,
		Visibility:      visibility,
		StartsAt:        startsAt,
		StartLocationID: startLocationID,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}

	created, err := s.repo.CreateEventWithStops(ctx, event, buildStops(stopIDs))
	if err != nil {
		// A losing race on the slug's nanoid suffix is astronomically
		// unlikely but still a 23505, not a server fault.
		if errors.IsUniqueViolation(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "An event with this slug already exists, retry", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	stops, err := s.repo.GetStopsByEventID(ctx, created.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load stops", err)
	}

	logger.Info("EventService:CreateEvent:Success", "event_id", created.ID, "slug", created.Slug)
	return dto.ToEventResponse(created, stops), nil
}

// GetEventBySlug returns the event detail, subject to the visibility
// policy. The detail payload is served through a read-through redis cache;
// the per-viewer authorization check always runs against the database.
func (s *EventService) GetEventBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	detail, appErr := s.loadDetail(ctx, slug)
	if appErr != nil {
		return nil, appErr
	}
	if detail == nil || detail.Event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	event := detail.Event

	var role *membershipEntity.MembershipRole
	hasInvite := false
	if viewerID != uuid.Nil {
		membership, err := s.memberRepo.GetByEventAndUser(ctx, event.ID, viewerID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
		}
		if membership != nil {
			role = &membership.Role
		} else {
			hasInvite, err = s.inviteRepo.HasPendingInvite(ctx, event.ID, viewerID)
			if err != nil {
				return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check invites", err)
			}
		}
	}

	if !membershipService.CanView(event, role, hasInvite) {
		// Deny without confirming the event exists.
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	return dto.ToEventResponse(event, detail.Stops), nil
}

func (s *EventService) loadDetail(ctx context.Context, slug string) (*cachedEventDetail, *errors.AppError) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, eventCacheKey(slug)).Result()
		if err == nil {
			var detail cachedEventDetail
			if jsonErr := json.Unmarshal([]byte(raw), &detail); jsonErr == nil {
				return &detail, nil
			}
		} else if err != redis.Nil {
			logger.Warn("EventService:loadDetail:CacheGet", "error", err, "slug", slug)
		}
	}

	event, err := s.repo.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil {
		return nil, nil
	}

	stops, err := s.repo.GetStopsByEventID(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load stops", err)
	}

	detail := &cachedEventDetail{Event: event, Stops: stops}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(detail); jsonErr == nil {
			if err := s.cache.Set(ctx, eventCacheKey(slug), raw, cacheTTL).Err(); err != nil {
				logger.Warn("EventService:loadDetail:CacheSet", "error", err, "slug", slug)
			}
		}
	}

	return detail, nil
}

func (s *EventService) invalidateCache(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, eventCacheKey(slug)).Err(); err != nil {
		logger.Warn("EventService:invalidateCache", "error", err, "slug", slug)
	}
}

// UpdateEvent updates event details; a provided stop list replaces the
// whole route (delete all, reinsert).
func (s *EventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID != hostID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the host may update the event", nil)
	}

	if req.Title != "" {
		title := strings.TrimSpace(req.Title)
		if title == "" || len(title) > maxTitleLength {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Title must be 1-120 characters", nil)
		}
		event.Title = title
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.Visibility != "" {
		visibility := entity.EventVisibility(req.Visibility)
		if !visibility.Valid() {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid visibility tier", nil)
		}
		event.Visibility = visibility
	}
	if req.StartsAt != "" {
		startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time format", err)
		}
		event.StartsAt = startsAt
	}
	if req.StartLocationID != "" {
		startLocationID, err := uuid.Parse(req.StartLocationID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start location id", nil)
		}
		event.StartLocationID = startLocationID
	}

	var stopIDs []uuid.UUID
	if req.StopLocationIDs != nil {
		var appErr *errors.AppError
		stopIDs, appErr = parseStopIDs(*req.StopLocationIDs)
		if appErr != nil {
			return nil, appErr
		}
	} else {
		current, err := s.repo.GetStopsByEventID(ctx, eventID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load stops", err)
		}
		for _, stop := range current {
			stopIDs = append(stopIDs, stop.LocationID)
		}
	}

	if appErr := s.validateRoute(ctx, event.StartLocationID, stopIDs); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update event", err)
	}

	if req.StopLocationIDs != nil {
		if err := s.repo.ReplaceStops(ctx, eventID, buildStops(stopIDs)); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update stops", err)
		}
	}

	s.invalidateCache(ctx, event.Slug)

	stops, err := s.repo.GetStopsByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load stops", err)
	}

	return dto.ToEventResponse(event, stops), nil
}

// DeleteEvent soft-deletes the event. Dependent rows stay in place; the
// flag hides the event from every read path.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, hostID uuid.UUID) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil || event.IsDeleted {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID != hostID {
		return errors.NewAppError(errors.ErrForbidden, "Only the host may delete the event", nil)
	}

	if err := s.repo.SoftDeleteEvent(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}

	s.invalidateCache(ctx, event.Slug)

	logger.Info("EventService:DeleteEvent:Success", "event_id", eventID)
	return nil
}

// ListUpcoming lists future public events.
func (s *EventService) ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[entity.Event], *errors.AppError) {
	page, err := s.repo.ListUpcoming(ctx, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}
	return page, nil
}
