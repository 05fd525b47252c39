package notification

import (
	"artwalk-api/core/database"
	"artwalk-api/core/middleware"
	"artwalk-api/modules/notification/controller"
	"artwalk-api/modules/notification/repository"
	"artwalk-api/modules/notification/router"
	"artwalk-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and returns the service for use by the task worker
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	r := router.NewNotificationRouter(ctrl)

	r.Register(g, mw)

	return svc
}
