package middleware

import (
	"strings"

	"artwalk-api/core/config"
	"artwalk-api/core/constants"
	"artwalk-api/core/controller"
	"artwalk-api/core/errors"
	"artwalk-api/core/logger"
	"artwalk-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cfg  *config.Config
	base controller.BaseController
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		cfg:  cfg,
		base: controller.NewBaseController(),
	}
}

// AuthMiddleware validates the bearer token and stores the claims in the
// request context for controllers to read.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Authorization header must be a bearer token")
			}

			claims, err := utils.ParseToken(parts[1], m.cfg.JWT.Secret)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return m.base.Unauthorized(errors.ErrUnauthorized, "Invalid or expired token")
			}

			ctx.Set(constants.ContextTokenData, claims)
			return next(ctx)
		}
	}
}

// OptionalAuthMiddleware stores the claims when a valid bearer token is
// present and lets the request through anonymously otherwise. Used on read
// endpoints where visibility depends on who is asking.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get("Authorization")
			if header == "" {
				return next(ctx)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return next(ctx)
			}

			if claims, err := utils.ParseToken(parts[1], m.cfg.JWT.Secret); err == nil {
				ctx.Set(constants.ContextTokenData, claims)
			}
			return next(ctx)
		}
	}
}
