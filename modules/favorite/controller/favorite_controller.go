package controller

import (
	"artwalk-api/core/constants"
	"artwalk-api/core/controller"
	"artwalk-api/core/errors"
	"artwalk-api/core/utils"
	"artwalk-api/modules/favorite/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type FavoriteController struct {
	controller.BaseController
	service service.FavoriteServiceInterface
}

func NewFavoriteController(svc service.FavoriteServiceInterface) *FavoriteController {
	return &FavoriteController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *FavoriteController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// Favorite handles POST /events/:id/favorite
// @Summary Favorite an event
// @Tags Favorite
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/favorite [post]
func (c *FavoriteController) Favorite(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := c.service.Favorite(ctx.Request().Context(), eventID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event favorited successfully")
}

// Unfavorite handles DELETE /events/:id/favorite
// @Summary Remove an event from favorites
// @Tags Favorite
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.UnfavoriteResponse
// @Router /private/events/{id}/favorite [delete]
func (c *FavoriteController) Unfavorite(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.service.Unfavorite(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Favorite removed")
}

// GetFavorites handles GET /favorites
// @Summary List my favorited events
// @Tags Favorite
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.FavoritesResponse
// @Router /private/favorites [get]
func (c *FavoriteController) GetFavorites(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	favorites, appErr := c.service.GetFavorites(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, favorites, "Favorites retrieved successfully")
}
