package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/directchat/controller"

	"github.com/labstack/echo/v4"
)

type DirectChatRouter struct {
	controller *controller.DirectChatController
}

func NewDirectChatRouter(controller *controller.DirectChatController) *DirectChatRouter {
	return &DirectChatRouter{
		controller: controller,
	}
}

func (r *DirectChatRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	chats := g.Group("/private/direct-chats")
	chats.Use(mw.AuthMiddleware())

	chats.POST("", r.controller.OpenChat)
	chats.GET("", r.controller.GetChats)
	chats.POST("/:id/messages", r.controller.SendMessage)
	chats.GET("/:id/messages", r.controller.GetMessages)
	chats.POST("/:id/leave", r.controller.LeaveChat)
	chats.GET("/:id/participants", r.controller.GetActiveParticipants)
	chats.POST("/:id/read", r.controller.MarkRead)
}
