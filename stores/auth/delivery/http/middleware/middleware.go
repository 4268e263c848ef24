package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain"
)

const actorKey = "actor"

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// ActorOf returns the caller resolved by Auth or OptionalAuth, the zero Actor for anonymous calls
func ActorOf(c echo.Context) domain.Actor {
	if actor, ok := c.Get(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorOf(c).IsAdmin {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	reqCtx := c.Get("ctx").(ctx.Ctx)
	if actor, err := m.auth.ParseToken(reqCtx, key); err != nil {
		reqCtx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	} else {
		c.Set(actorKey, actor)
		c.Set("ctx", ctx.WithValue(reqCtx, "actorId", actor.Id))
		return true, nil
	}
}
