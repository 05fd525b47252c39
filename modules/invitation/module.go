package invitation

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	eventRepo "artwalk-api/modules/event/repository"
	"artwalk-api/modules/invitation/controller"
	"artwalk-api/modules/invitation/repository"
	"artwalk-api/modules/invitation/router"
	"artwalk-api/modules/invitation/service"
	"artwalk-api/modules/notification/tasks"
	userRepo "artwalk-api/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the invitation module
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, dispatcher *tasks.Dispatcher) service.InvitationServiceInterface {
	repo := repository.NewInvitationRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	userRepository := userRepo.NewUserRepository(db)

	svc := service.NewInvitationService(repo, eventRepository, userRepository, dispatcher)
	ctrl := controller.NewInvitationController(svc)
	r := router.NewInvitationRouter(ctrl)

	r.Register(g, mw)

	return svc
}
