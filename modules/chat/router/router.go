package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/chat/controller"

	"github.com/labstack/echo/v4"
)

type ChatRouter struct {
	controller *controller.ChatController
}

func NewChatRouter(controller *controller.ChatController) *ChatRouter {
	return &ChatRouter{
		controller: controller,
	}
}

func (r *ChatRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/private/events")
	events.Use(mw.AuthMiddleware())

	events.POST("/:id/chat", r.controller.PostMessage)
	events.GET("/:id/chat", r.controller.GetMessages)
}
