package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{
		controller: controller,
	}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/events")
	events.Use(mw.OptionalAuthMiddleware())
	events.GET("", r.controller.ListUpcoming)
	events.GET("/:slug", r.controller.GetEvent)

	private := g.Group("/private/events")
	private.Use(mw.AuthMiddleware())
	private.POST("", r.controller.CreateEvent)
	private.PUT("/:id", r.controller.UpdateEvent)
	private.DELETE("/:id", r.controller.DeleteEvent)
}
