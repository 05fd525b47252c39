package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/invitation/controller"

	"github.com/labstack/echo/v4"
)

type InvitationRouter struct {
	controller *controller.InvitationController
}

func NewInvitationRouter(controller *controller.InvitationController) *InvitationRouter {
	return &InvitationRouter{
		controller: controller,
	}
}

func (r *InvitationRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	private := g.Group("/private")
	private.Use(mw.AuthMiddleware())

	private.POST("/events/:id/invites", r.controller.CreateInvites)
	private.GET("/events/:id/invites", r.controller.GetEventInvites)
	private.GET("/invites/pending", r.controller.GetPendingInvites)
	private.POST("/invites/:id/accept", r.controller.AcceptInvite)
	private.POST("/invites/:id/decline", r.controller.DeclineInvite)
}
