package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/membership/controller"

	"github.com/labstack/echo/v4"
)

type MembershipRouter struct {
	controller *controller.MembershipController
}

func NewMembershipRouter(controller *controller.MembershipController) *MembershipRouter {
	return &MembershipRouter{
		controller: controller,
	}
}

func (r *MembershipRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/private/events")
	events.Use(mw.AuthMiddleware())

	events.POST("/:id/join", r.controller.Join)
	events.POST("/:id/leave", r.controller.Leave)
	events.GET("/:id/members", r.controller.GetMembers)
}
