package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazad/goapi/base/delivery"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type authHandler struct{}

func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware) {
	handler := &authHandler{}
	g := e.Group("/auth")
	g.GET("/me", handler.me, authMiddleware.Auth())
}

// me returns the caller as resolved from the bearer token
func (h *authHandler) me(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, authMiddleware.ActorOf(c))
}
