package chat

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	"artwalk-api/modules/chat/controller"
	"artwalk-api/modules/chat/repository"
	"artwalk-api/modules/chat/router"
	"artwalk-api/modules/chat/service"
	eventRepo "artwalk-api/modules/event/repository"
	membershipRepo "artwalk-api/modules/membership/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the event chat module
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) service.ChatServiceInterface {
	repo := repository.NewChatRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	memberRepository := membershipRepo.NewMembershipRepository(db)

	svc := service.NewChatService(repo, eventRepository, memberRepository)
	ctrl := controller.NewChatController(svc)
	r := router.NewChatRouter(ctrl)

	r.Register(g, mw)

	return svc
}
