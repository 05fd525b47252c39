package service

import (
	"context"

	"artwalk-api/core/errors"
	eventRepo "artwalk-api/modules/event/repository"
	"artwalk-api/modules/favorite/dto"
	"artwalk-api/modules/favorite/repository"

	"github.com/google/uuid"
)

// FavoriteService is the bookmarks registry. Favoriting and unfavoriting
// are idempotent.
type FavoriteService struct {
	repo      repository.FavoriteRepositoryInterface
	eventRepo eventRepo.EventRepositoryInterface
}

// FavoriteServiceInterface defines the service contract
type FavoriteServiceInterface interface {
	Favorite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError
	Unfavorite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*dto.UnfavoriteResponse, *errors.AppError)
	GetFavorites(ctx context.Context, userID uuid.UUID) (*dto.FavoritesResponse, *errors.AppError)
}

func NewFavoriteService(
	repo repository.FavoriteRepositoryInterface,
	eventRepository eventRepo.EventRepositoryInterface,
) FavoriteServiceInterface {
	return &FavoriteService{
		repo:      repo,
		eventRepo: eventRepository,
	}
}

func (s *FavoriteService) Favorite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.IsDeleted {
		return errors.NewAppError(errors.ErrCannotFavoriteDeleted, "Cannot favorite a deleted event", nil)
	}

	if err := s.repo.Create(ctx, eventID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to favorite event", err)
	}
	return nil
}

// Unfavorite removes the bookmark. Removing a bookmark that never existed
// is not an error; the response says whether anything was removed.
func (s *FavoriteService) Unfavorite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*dto.UnfavoriteResponse, *errors.AppError) {
	removed, err := s.repo.Delete(ctx, eventID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to unfavorite event", err)
	}
	return &dto.UnfavoriteResponse{Removed: removed}, nil
}

func (s *FavoriteService) GetFavorites(ctx context.Context, userID uuid.UUID) (*dto.FavoritesResponse, *errors.AppError) {
	favorites, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load favorites", err)
	}
	return dto.ToFavoritesResponse(favorites), nil
}
