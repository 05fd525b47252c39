package membership

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	eventRepo "artwalk-api/modules/event/repository"
	invitationRepo "artwalk-api/modules/invitation/repository"
	"artwalk-api/modules/membership/controller"
	"artwalk-api/modules/membership/repository"
	"artwalk-api/modules/membership/router"
	"artwalk-api/modules/membership/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the membership module and returns the service for use by other modules
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) service.MembershipServiceInterface {
	repo := repository.NewMembershipRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	inviteRepository := invitationRepo.NewInvitationRepository(db)

	svc := service.NewMembershipService(repo, eventRepository, inviteRepository)
	ctrl := controller.NewMembershipController(svc)
	r := router.NewMembershipRouter(ctrl)

	r.Register(g, mw)

	return svc
}
