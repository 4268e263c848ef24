package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain/order"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	order order.Usecase
}

func New(e *echo.Echo, order order.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{order}

	e.POST("/listings/:id/buy-now", h.buyNow, authMiddleware.Auth())
	e.GET("/orders/:id", h.get, authMiddleware.Auth())
	e.GET("/me/orders", h.mine, authMiddleware.Auth())
}

func (h *handler) buyNow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.order.BuyNow(ctx, authMiddleware.ActorOf(c), c.Param("id"))
	if err != nil {
		ctx.WithField("err", err).Warn("order.BuyNow failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.order.GetOrder(ctx, authMiddleware.ActorOf(c), c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) mine(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Role     string `query:"role" validate:"omitempty,oneof=buyer seller"`
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

	res, err := h.order.MyOrders(ctx, authMiddleware.ActorOf(c), order.Role(p.Role), p.Page, p.PageSize)
	if err != nil {
		ctx.WithField("err", err).Warn("order.MyOrders failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
