package directchat

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	"artwalk-api/modules/directchat/controller"
	"artwalk-api/modules/directchat/repository"
	"artwalk-api/modules/directchat/router"
	"artwalk-api/modules/directchat/service"
	membershipRepo "artwalk-api/modules/membership/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the direct chat module
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) service.DirectChatServiceInterface {
	repo := repository.NewDirectChatRepository(db)
	memberRepository := membershipRepo.NewMembershipRepository(db)

	svc := service.NewDirectChatService(repo, memberRepository)
	ctrl := controller.NewDirectChatController(svc)
	r := router.NewDirectChatRouter(ctrl)

	r.Register(g, mw)

	return svc
}
