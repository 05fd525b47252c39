package joinrequest

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	eventRepo "artwalk-api/modules/event/repository"
	invitationRepo "artwalk-api/modules/invitation/repository"
	"artwalk-api/modules/joinrequest/controller"
	"artwalk-api/modules/joinrequest/repository"
	"artwalk-api/modules/joinrequest/router"
	"artwalk-api/modules/joinrequest/service"
	membershipRepo "artwalk-api/modules/membership/repository"
	"artwalk-api/modules/notification/tasks"

	"github.com/labstack/echo/v4"
)

// Init initializes the join request module
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, dispatcher *tasks.Dispatcher) service.JoinRequestServiceInterface {
	repo := repository.NewJoinRequestRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	memberRepository := membershipRepo.NewMembershipRepository(db)
	inviteRepository := invitationRepo.NewInvitationRepository(db)

	svc := service.NewJoinRequestService(repo, eventRepository, memberRepository, inviteRepository, dispatcher)
	ctrl := controller.NewJoinRequestController(svc)
	r := router.NewJoinRequestRouter(ctrl)

	r.Register(g, mw)

	return svc
}
