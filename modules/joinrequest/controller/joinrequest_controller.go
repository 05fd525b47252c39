package controller

import (
	"artwalk-api/core/constants"
	"artwalk-api/core/controller"
	"artwalk-api/core/errors"
	"artwalk-api/core/utils"
	"artwalk-api/modules/joinrequest/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type JoinRequestController struct {
	controller.BaseController
	service service.JoinRequestServiceInterface
}

func NewJoinRequestController(svc service.JoinRequestServiceInterface) *JoinRequestController {
	return &JoinRequestController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *JoinRequestController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// RequestJoin handles POST /events/:id/join-requests
// @Summary Request to join an invite-only event
// @Tags JoinRequest
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.JoinRequestResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/events/{id}/join-requests [post]
func (c *JoinRequestController) RequestJoin(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	request, appErr := c.service.RequestJoin(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, request, "Join request submitted successfully")
}

// GetPendingRequests handles GET /events/:id/join-requests
// @Summary List pending join requests for an event
// @Tags JoinRequest
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.JoinRequestsResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/join-requests [get]
func (c *JoinRequestController) GetPendingRequests(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	requests, appErr := c.service.GetPendingRequests(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, requests, "Join requests retrieved successfully")
}

// ApproveRequest handles POST /join-requests/:id/approve
// @Summary Approve a join request
// @Tags JoinRequest
// @Security BearerAuth
// @Produce json
// @Param id path string true "Join request ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/join-requests/{id}/approve [post]
func (c *JoinRequestController) ApproveRequest(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid join request id")
	}

	if appErr := c.service.ApproveRequest(ctx.Request().Context(), requestID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Join request approved successfully")
}

// DeclineRequest handles POST /join-requests/:id/decline
// @Summary Decline a join request
// @Tags JoinRequest
// @Security BearerAuth
// @Produce json
// @Param id path string true "Join request ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/join-requests/{id}/decline [post]
func (c *JoinRequestController) DeclineRequest(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid join request id")
	}

	if appErr := c.service.DeclineRequest(ctx.Request().Context(), requestID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Join request declined successfully")
}
