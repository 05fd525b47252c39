package dto

import (
	"time"

	"artwalk-api/modules/favorite/entity"
)

type FavoriteResponse struct {
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
	Total     int                `json:"total"`
}

type UnfavoriteResponse struct {
	Removed bool `json:"removed"`
}

func ToFavoritesResponse(favorites []entity.Favorite) *FavoritesResponse {
	items := make([]FavoriteResponse, 0, len(favorites))
	for _, favorite := range favorites {
		items = append(items, FavoriteResponse{
			EventID:   favorite.EventID.String(),
			CreatedAt: favorite.CreatedAt,
		})
	}
	return &FavoritesResponse{Favorites: items, Total: len(items)}
}
