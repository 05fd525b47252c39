package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/joinrequest/controller"

	"github.com/labstack/echo/v4"
)

type JoinRequestRouter struct {
	controller *controller.JoinRequestController
}

func NewJoinRequestRouter(controller *controller.JoinRequestController) *JoinRequestRouter {
	return &JoinRequestRouter{
		controller: controller,
	}
}

func (r *JoinRequestRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	private := g.Group("/private")
	private.Use(mw.AuthMiddleware())

	private.POST("/events/:id/join-requests", r.controller.RequestJoin)
	private.GET("/events/:id/join-requests", r.controller.GetPendingRequests)
	private.POST("/join-requests/:id/approve", r.controller.ApproveRequest)
	private.POST("/join-requests/:id/decline", r.controller.DeclineRequest)
}
