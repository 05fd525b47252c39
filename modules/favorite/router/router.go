package router

import (
	"artwalk-api/core/middleware"
	"artwalk-api/modules/favorite/controller"

	"github.com/labstack/echo/v4"
)

type FavoriteRouter struct {
	controller *controller.FavoriteController
}

func NewFavoriteRouter(controller *controller.FavoriteController) *FavoriteRouter {
	return &FavoriteRouter{
		controller: controller,
	}
}

func (r *FavoriteRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	private := g.Group("/private")
	private.Use(mw.AuthMiddleware())

	private.POST("/events/:id/favorite", r.controller.Favorite)
	private.DELETE("/events/:id/favorite", r.controller.Unfavorite)
	private.GET("/favorites", r.controller.GetFavorites)
}
