package event

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	"artwalk-api/modules/event/controller"
	"artwalk-api/modules/event/repository"
	"artwalk-api/modules/event/router"
	"artwalk-api/modules/event/service"
	invitationRepo "artwalk-api/modules/invitation/repository"
	locationRepo "artwalk-api/modules/location/repository"
	membershipRepo "artwalk-api/modules/membership/repository"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Init initializes the event module and returns the service for use by other modules
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, cache *redis.Client) service.EventServiceInterface {
	repo := repository.NewEventRepository(db)
	locationRepository := locationRepo.NewLocationRepository(db)
	memberRepository := membershipRepo.NewMembershipRepository(db)
	inviteRepository := invitationRepo.NewInvitationRepository(db)

	svc := service.NewEventService(repo, locationRepository, memberRepository, inviteRepository, cache)
	ctrl := controller.NewEventController(svc)
	r := router.NewEventRouter(ctrl)

	r.Register(g, mw)

	return svc
}
