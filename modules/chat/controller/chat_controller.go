package controller

import (
	"artwalk-api/core/constants"
	"artwalk-api/core/controller"
	"artwalk-api/core/errors"
	"artwalk-api/core/utils"
	"artwalk-api/modules/chat/dto"
	"artwalk-api/modules/chat/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ChatController struct {
	controller.BaseController
	service service.ChatServiceInterface
}

func NewChatController(svc service.ChatServiceInterface) *ChatController {
	return &ChatController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *ChatController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// PostMessage handles POST /events/:id/chat
// @Summary Post a message to the event chat
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.PostMessageRequest true "Message body"
// @Success 200 {object} dto.ChatMessageResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/chat [post]
func (c *ChatController) PostMessage(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.PostMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	message, appErr := c.service.PostMessage(ctx.Request().Context(), eventID, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, message, "Message posted successfully")
}

// GetMessages handles GET /events/:id/chat
// @Summary Read the event chat log
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.ChatMessagesResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/chat [get]
func (c *ChatController) GetMessages(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	messages, appErr := c.service.GetMessages(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, messages, "Messages retrieved successfully")
}
