package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain/audit"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	audit audit.Usecase
}

func New(e *echo.Echo, audit audit.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{audit}

	g := e.Group("/admin/audit-logs", authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.GET("", h.list)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Area     string `query:"area" validate:"omitempty,oneof=Auctions Catalog"`
		ActorId  string `query:"actorId"`
		EntityId string `query:"entityId"`
		Page     int    `query:"page"`
		PageSize int    `query:"pageSize" validate:"gte=0,lte=100"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.audit.List(ctx, authMiddleware.ActorOf(c), audit.ListParams{
		Area:     p.Area,
		ActorId:  p.ActorId,
		EntityId: p.EntityId,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		ctx.WithField("err", err).Error("audit.List failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
