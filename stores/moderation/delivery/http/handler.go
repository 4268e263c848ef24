package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain/listing"
	"github.com/mazad/goapi/domain/moderation"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	moderation moderation.Usecase
}

func New(e *echo.Echo, moderation moderation.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{moderation}

	g := e.Group("/admin/listings", authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.GET("", h.queue)
	g.POST("/:id/approve", h.approve)
	g.POST("/:id/reject", h.reject)
	g.POST("/:id/status", h.setFinalStatus)
}

func (h *handler) queue(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Status   string `query:"status"`
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

	var status *listing.Status
	if p.Status != "" {
		st := listing.Status(p.Status)
		status = &st
	}

	res, err := h.moderation.Queue(ctx, authMiddleware.ActorOf(c), status, p.Page, p.PageSize)
	if err != nil {
		ctx.WithField("err", err).Warn("moderation.Queue failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Notes string `json:"notes" validate:"max=1000"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.moderation.Approve(ctx, authMiddleware.ActorOf(c), c.Param("id"), p.Notes)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) reject(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Reason string `json:"reason" validate:"required,max=1000"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.moderation.Reject(ctx, authMiddleware.ActorOf(c), c.Param("id"), p.Reason)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setFinalStatus(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Status string `json:"status" validate:"required,oneof=cancelled sold expired"`
		Notes  string `json:"notes" validate:"max=1000"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.moderation.SetFinalStatus(ctx, authMiddleware.ActorOf(c), c.Param("id"), listing.Status(p.Status), p.Notes)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
