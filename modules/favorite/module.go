package favorite

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	eventRepo "artwalk-api/modules/event/repository"
	"artwalk-api/modules/favorite/controller"
	"artwalk-api/modules/favorite/repository"
	"artwalk-api/modules/favorite/router"
	"artwalk-api/modules/favorite/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the favorites module
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) service.FavoriteServiceInterface {
	repo := repository.NewFavoriteRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)

	svc := service.NewFavoriteService(repo, eventRepository)
	ctrl := controller.NewFavoriteController(svc)
	r := router.NewFavoriteRouter(ctrl)

	r.Register(g, mw)

	return svc
}
