package controller

import (
	"artwalk-api/core/constants"
	"artwalk-api/core/controller"
	"artwalk-api/core/errors"
	"artwalk-api/core/utils"
	"artwalk-api/modules/invitation/dto"
	"artwalk-api/modules/invitation/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InvitationController struct {
	controller.BaseController
	service service.InvitationServiceInterface
}

func NewInvitationController(svc service.InvitationServiceInterface) *InvitationController {
	return &InvitationController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *InvitationController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// CreateInvites handles POST /events/:id/invites
// @Summary Invite users to an event
// @Tags Invitation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.CreateInvitesRequest true "Invitee ids"
// @Success 200 {object} dto.InvitesResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/invites [post]
func (c *InvitationController) CreateInvites(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.CreateInvitesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	invites, appErr := c.service.CreateInvites(ctx.Request().Context(), eventID, userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, invites, "Invites created successfully")
}

// AcceptInvite handles POST /invites/:id/accept
// @Summary Accept an invitation
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invite ID"
// @Success 200 {object} dto.InviteResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/invites/{id}/accept [post]
func (c *InvitationController) AcceptInvite(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	inviteID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid invite id")
	}

	invite, appErr := c.service.AcceptInvite(ctx.Request().Context(), inviteID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, invite, "Invite accepted successfully")
}

// DeclineInvite handles POST /invites/:id/decline
// @Summary Decline an invitation
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invite ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/invites/{id}/decline [post]
func (c *InvitationController) DeclineInvite(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	inviteID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid invite id")
	}

	if appErr := c.service.DeclineInvite(ctx.Request().Context(), inviteID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Invite declined successfully")
}

// GetPendingInvites handles GET /invites/pending
// @Summary List my pending invitations
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.InvitesResponse
// @Router /private/invites/pending [get]
func (c *InvitationController) GetPendingInvites(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	invites, appErr := c.service.GetPendingInvites(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, invites, "Invites retrieved successfully")
}

// GetEventInvites handles GET /events/:id/invites
// @Summary List invitations for an event
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.InvitesResponse
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id}/invites [get]
func (c *InvitationController) GetEventInvites(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	invites, appErr := c.service.GetEventInvites(ctx.Request().Context(), eventID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, invites, "Invites retrieved successfully")
}
