package service

import (
	"context"
	"testing"
	"time"

	coreEntity "artwalk-api/core/entity"
	"artwalk-api/core/errors"
	"artwalk-api/core/params"
	eventEntity "artwalk-api/modules/event/entity"
	"artwalk-api/modules/favorite/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*eventEntity.Event
}

func (f *fakeEventRepo) CreateEventWithStops(ctx context.Context, event *eventEntity.Event, stops []eventEntity.EventStop) (*eventEntity.Event, error) {
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) GetEventBySlug(ctx context.Context, slug string) (*eventEntity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetStopsByEventID(ctx context.Context, eventID uuid.UUID) ([]eventEntity.EventStop, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, event *eventEntity.Event) error {
	return nil
}

func (f *fakeEventRepo) ReplaceStops(ctx context.Context, eventID uuid.UUID, stops []eventEntity.EventStop) error {
	return nil
}

func (f *fakeEventRepo) SoftDeleteEvent(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[eventEntity.Event], error) {
	return &coreEntity.Pagination[eventEntity.Event]{}, nil
}

type pairKey struct {
	event uuid.UUID
	user  uuid.UUID
}

type fakeFavoriteRepo struct {
	rows map[pairKey]time.Time
}

func (f *fakeFavoriteRepo) Create(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	key := pairKey{eventID, userID}
	if _, exists := f.rows[key]; !exists {
		f.rows[key] = time.Now()
	}
	return nil
}

func (f *fakeFavoriteRepo) Delete(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	key := pairKey{eventID, userID}
	if _, exists := f.rows[key]; !exists {
		return false, nil
	}
	delete(f.rows, key)
	return true, nil
}

func (f *fakeFavoriteRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	var out []entity.Favorite
	for key, at := range f.rows {
		if key.user == userID {
			out = append(out, entity.Favorite{EventID: key.event, UserID: key.user, CreatedAt: at})
		}
	}
	return out, nil
}

func setupFavorite() (FavoriteServiceInterface, *fakeFavoriteRepo, *eventEntity.Event) {
	event := &eventEntity.Event{
		ID:         uuid.New(),
		Title:      "Harbor Mosaics",
		HostID:     uuid.New(),
		Visibility: eventEntity.VisibilityPublicOpen,
	}
	eventRepo := &fakeEventRepo{events: map[uuid.UUID]*eventEntity.Event{event.ID: event}}
	repo := &fakeFavoriteRepo{rows: make(map[pairKey]time.Time)}
	return NewFavoriteService(repo, eventRepo), repo, event
}

func TestFavoriteIdempotent(t *testing.T) {
	svc, repo, event := setupFavorite()
	ctx := context.Background()
	userID := uuid.New()

	if appErr := svc.Favorite(ctx, event.ID, userID); appErr != nil {
		t.Fatalf("Favorite() failed: %v", appErr)
	}
	if appErr := svc.Favorite(ctx, event.ID, userID); appErr != nil {
		t.Fatalf("repeat Favorite() failed: %v", appErr)
	}
	if len(repo.rows) != 1 {
		t.Errorf("expected 1 favorite row, got %d", len(repo.rows))
	}
}

func TestFavoriteDeletedEvent(t *testing.T) {
	svc, _, event := setupFavorite()
	event.IsDeleted = true

	appErr := svc.Favorite(context.Background(), event.ID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrCannotFavoriteDeleted {
		t.Errorf("favorite deleted event: got %v, want %s", appErr, errors.ErrCannotFavoriteDeleted)
	}
}

func TestUnfavoriteReportsRemoval(t *testing.T) {
	svc, _, event := setupFavorite()
	ctx := context.Background()
	userID := uuid.New()

	result, appErr := svc.Unfavorite(ctx, event.ID, userID)
	if appErr != nil {
		t.Fatalf("Unfavorite() on non-favorited failed: %v", appErr)
	}
	if result.Removed {
		t.Error("expected Removed=false for a pair that was never favorited")
	}

	if appErr := svc.Favorite(ctx, event.ID, userID); appErr != nil {
		t.Fatalf("Favorite() failed: %v", appErr)
	}
	result, appErr = svc.Unfavorite(ctx, event.ID, userID)
	if appErr != nil {
		t.Fatalf("Unfavorite() failed: %v", appErr)
	}
	if !result.Removed {
		t.Error("expected Removed=true after unfavoriting")
	}
}

func TestGetFavorites(t *testing.T) {
	svc, _, event := setupFavorite()
	ctx := context.Background()
	userID := uuid.New()

	if appErr := svc.Favorite(ctx, event.ID, userID); appErr != nil {
		t.Fatalf("Favorite() failed: %v", appErr)
	}

	favorites, appErr := svc.GetFavorites(ctx, userID)
	if appErr != nil {
		t.Fatalf("GetFavorites() failed: %v", appErr)
	}
	if favorites.Total != 1 {
		t.Errorf("expected 1 favorite, got %d", favorites.Total)
	}
	if favorites.Favorites[0].EventID != event.ID.String() {
		t.Errorf("unexpected event id %s", favorites.Favorites[0].EventID)
	}
}
