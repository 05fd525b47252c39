package controller

import (
	"artwalk-api/core/constants"
	"artwalk-api/core/controller"
	"artwalk-api/core/errors"
	"artwalk-api/core/utils"
	"artwalk-api/modules/directchat/dto"
	"artwalk-api/modules/directchat/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type DirectChatController struct {
	controller.BaseController
	service service.DirectChatServiceInterface
}

func NewDirectChatController(svc service.DirectChatServiceInterface) *DirectChatController {
	return &DirectChatController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *DirectChatController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// OpenChat handles POST /direct-chats
// @Summary Open or reuse a direct chat with another event member
// @Tags DirectChat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.OpenChatRequest true "Event and counterpart"
// @Success 200 {object} dto.DirectChatResponse
// @Failure 403 {object} errors.AppError
// @Router /private/direct-chats [post]
func (c *DirectChatController) OpenChat(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.OpenChatRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	chat, appErr := c.service.OpenChat(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, chat, "Chat opened successfully")
}

// GetChats handles GET /direct-chats
// @Summary List my direct chats
// @Tags DirectChat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DirectChatsResponse
// @Router /private/direct-chats [get]
func (c *DirectChatController) GetChats(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	chats, appErr := c.service.GetChats(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, chats, "Chats retrieved successfully")
}

// SendMessage handles POST /direct-chats/:id/messages
// @Summary Send a direct message
// @Tags DirectChat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Chat ID"
// @Param request body dto.SendMessageRequest true "Message body"
// @Success 200 {object} dto.DirectMessageResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Router /private/direct-chats/{id}/messages [post]
func (c *DirectChatController) SendMessage(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	chatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid chat id")
	}

	var req dto.SendMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	message, appErr := c.service.SendMessage(ctx.Request().Context(), chatID, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, message, "Message sent successfully")
}

// GetMessages handles GET /direct-chats/:id/messages
// @Summary Read a direct chat's messages
// @Tags DirectChat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chat ID"
// @Success 200 {object} dto.DirectMessagesResponse
// @Failure 403 {object} errors.AppError
// @Router /private/direct-chats/{id}/messages [get]
func (c *DirectChatController) GetMessages(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	chatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid chat id")
	}

	messages, appErr := c.service.GetMessages(ctx.Request().Context(), chatID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, messages, "Messages retrieved successfully")
}

// LeaveChat handles POST /direct-chats/:id/leave
// @Summary Leave a direct chat
// @Tags DirectChat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chat ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/direct-chats/{id}/leave [post]
func (c *DirectChatController) LeaveChat(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	chatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid chat id")
	}

	if appErr := c.service.LeaveChat(ctx.Request().Context(), chatID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Left chat successfully")
}

// GetActiveParticipants handles GET /direct-chats/:id/participants
// @Summary List the chat participants who have not left
// @Tags DirectChat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chat ID"
// @Success 200 {object} dto.ActiveParticipantsResponse
// @Failure 403 {object} errors.AppError
// @Router /private/direct-chats/{id}/participants [get]
func (c *DirectChatController) GetActiveParticipants(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	chatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid chat id")
	}

	participants, appErr := c.service.GetActiveParticipants(ctx.Request().Context(), chatID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, participants, "Participants retrieved successfully")
}

// MarkRead handles POST /direct-chats/:id/read
// @Summary Mark the counterpart's messages as read
// @Tags DirectChat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Chat ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Router /private/direct-chats/{id}/read [post]
func (c *DirectChatController) MarkRead(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	chatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid chat id")
	}

	if appErr := c.service.MarkRead(ctx.Request().Context(), chatID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Messages marked as read")
}
