package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain/bid"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	bid bid.Usecase
}

type pagingParams struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize" validate:"gte=0,lte=100"`
}

func New(e *echo.Echo, bid bid.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{bid}

	gl := e.Group("/listings/:id/bids")
	gl.POST("", h.placeBid, authMiddleware.Auth())
	gl.GET("", h.getListingBids, authMiddleware.OptionalAuth())

	e.GET("/bids/:id", h.getBid, authMiddleware.OptionalAuth())
	e.GET("/me/bids", h.getMyBids, authMiddleware.Auth())
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Amount decimal.Decimal `json:"amount" validate:"decgt0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.bid.PlaceBid(ctx, authMiddleware.ActorOf(c), c.Param("id"), p.Amount)
	if err != nil {
		ctx.WithField("err", err).Warn("bid.PlaceBid failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) getListingBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pagingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.bid.GetListingBids(ctx, authMiddleware.ActorOf(c), c.Param("id"), p.Page, p.PageSize)
	if err != nil {
		ctx.WithField("err", err).Warn("bid.GetListingBids failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.bid.GetBidById(ctx, authMiddleware.ActorOf(c), c.Param("id"))
	if err != nil {
		ctx.WithField("err", err).Warn("bid.GetBidById failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getMyBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pagingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.bid.GetMyBids(ctx, authMiddleware.ActorOf(c), p.Page, p.PageSize)
	if err != nil {
		ctx.WithField("err", err).Warn("bid.GetMyBids failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
