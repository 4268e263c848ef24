package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.Usecase
}

type pagingParams struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize" validate:"gte=0,lte=100"`
}

type mediaParams struct {
	Url       string `json:"url" validate:"required,max=2048"`
	Type      string `json:"type" validate:"required,mediatype"`
	IsCover   bool   `json:"isCover"`
	SortOrder *int   `json:"sortOrder" validate:"omitempty,gte=0"`
}

func toMediaParams(media []mediaParams) []listing.MediaParams {
	res := make([]listing.MediaParams, 0, len(media))
	for _, m := range media {
		res = append(res, listing.MediaParams{Url: m.Url, Type: m.Type, IsCover: m.IsCover, SortOrder: m.SortOrder})
	}
	return res
}

func New(e *echo.Echo, listing listing.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{listing}

	g := e.Group("/listings")
	g.GET("", h.search)
	g.POST("", h.create, authMiddleware.Auth())
	g.GET("/slug/:slug", h.getBySlug)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update, authMiddleware.Auth())
	g.DELETE("/:id", h.delete, authMiddleware.Auth())
	g.GET("/:id/history", h.history, authMiddleware.OptionalAuth())

	g.POST("/:id/media", h.addMedia, authMiddleware.Auth())
	g.DELETE("/:id/media/:mediaId", h.removeMedia, authMiddleware.Auth())

	g.POST("/:id/submit", h.command("listing.Submit", h.listing.Submit), authMiddleware.Auth())
	g.POST("/:id/publish", h.command("listing.Publish", h.listing.Publish), authMiddleware.Auth())
	g.POST("/:id/unpublish", h.command("listing.Unpublish", h.listing.Unpublish), authMiddleware.Auth())
	g.POST("/:id/extend", h.extend, authMiddleware.Auth())
	g.POST("/:id/status", h.setStatus, authMiddleware.Auth())

	g.POST("/:id/watch", h.watch, authMiddleware.Auth())
	g.DELETE("/:id/watch", h.unwatch, authMiddleware.Auth())

	e.GET("/me/listings", h.mine, authMiddleware.Auth())
	e.GET("/me/watchlist", h.myWatchlist, authMiddleware.Auth())
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Search     string `query:"search" validate:"max=200"`
		CategoryId string `query:"categoryId"`
		Type       string `query:"type" validate:"omitempty,oneof=auction buyNow both"`
		Sort       string `query:"sort" validate:"omitempty,oneof=-createdAt price -price endAt -endAt"`
		Page       int    `query:"page"`
		PageSize   int    `query:"pageSize" validate:"gte=0,lte=100"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Search(ctx, listing.SearchParams{
		Search:     p.Search,
		CategoryId: p.CategoryId,
		Type:       listing.SaleType(p.Type),
		Sort:       p.Sort,
		Page:       p.Page,
		PageSize:   p.PageSize,
	})
	if err != nil {
		ctx.WithField("err", err).Error("listing.Search failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CategoryId   string                 `json:"categoryId" validate:"required"`
		Title        string                 `json:"title" validate:"required,max=200"`
		Description  string                 `json:"description" validate:"required"`
		Location     string                 `json:"location" validate:"max=200"`
		Attributes   map[string]interface{} `json:"attributes"`
		Type         string                 `json:"type" validate:"required,oneof=auction buyNow both"`
		StartAt      *time.Time             `json:"startAt"`
		EndAt        *time.Time             `json:"endAt"`
		StartPrice   *decimal.Decimal       `json:"startPrice" validate:"omitempty,decgte0"`
		ReservePrice *decimal.Decimal       `json:"reservePrice" validate:"omitempty,decgte0"`
		BidIncrement *decimal.Decimal       `json:"bidIncrement" validate:"omitempty,decgt0"`
		BuyNowPrice  *decimal.Decimal       `json:"buyNowPrice" validate:"omitempty,decgt0"`
		Media        []mediaParams          `json:"media" validate:"dive"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Create(ctx, authMiddleware.ActorOf(c), listing.CreateParams{
		CategoryId:   p.CategoryId,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		Attributes:   p.Attributes,
		Type:         listing.SaleType(p.Type),
		StartAt:      p.StartAt,
		EndAt:        p.EndAt,
		StartPrice:   p.StartPrice,
		ReservePrice: p.ReservePrice,
		BidIncrement: p.BidIncrement,
		BuyNowPrice:  p.BuyNowPrice,
		Media:        toMediaParams(p.Media),
	})
	if err != nil {
		ctx.WithField("err", err).Warn("listing.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.FindOne(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBySlug(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CategoryId   *string                `json:"categoryId" validate:"omitempty,min=1"`
		Title        *string                `json:"title" validate:"omitempty,max=200"`
		Description  *string                `json:"description"`
		Location     *string                `json:"location" validate:"omitempty,max=200"`
		Attributes   map[string]interface{} `json:"attributes"`
		Type         *string                `json:"type" validate:"omitempty,oneof=auction buyNow both"`
		StartAt      *time.Time             `json:"startAt"`
		EndAt        *time.Time             `json:"endAt"`
		StartPrice   *decimal.Decimal       `json:"startPrice" validate:"omitempty,decgte0"`
		ReservePrice *decimal.Decimal       `json:"reservePrice" validate:"omitempty,decgte0"`
		BidIncrement *decimal.Decimal       `json:"bidIncrement" validate:"omitempty,decgt0"`
		BuyNowPrice  *decimal.Decimal       `json:"buyNowPrice" validate:"omitempty,decgt0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	up := listing.UpdateParams{
		CategoryId:   p.CategoryId,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		Attributes:   p.Attributes,
		StartAt:      p.StartAt,
		EndAt:        p.EndAt,
		StartPrice:   p.StartPrice,
		ReservePrice: p.ReservePrice,
		BidIncrement: p.BidIncrement,
		BuyNowPrice:  p.BuyNowPrice,
	}
	if p.Type != nil {
		t := listing.SaleType(*p.Type)
		up.Type = &t
	}

	res, err := h.listing.Update(ctx, authMiddleware.ActorOf(c), c.Param("id"), up)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.Update failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.listing.Delete(ctx, authMiddleware.ActorOf(c), c.Param("id")); err != nil {
		ctx.WithField("err", err).Warn("listing.Delete failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) history(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.History(ctx, authMiddleware.ActorOf(c), c.Param("id"))
	if err != nil {
		ctx.WithField("err", err).Warn("listing.History failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) addMedia(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Media []mediaParams `json:"media" validate:"required,min=1,dive"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.AddMedia(ctx, authMiddleware.ActorOf(c), c.Param("id"), toMediaParams(p.Media))
	if err != nil {
		ctx.WithField("err", err).Warn("listing.AddMedia failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) removeMedia(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.RemoveMedia(ctx, authMiddleware.ActorOf(c), c.Param("id"), c.Param("mediaId"))
	if err != nil {
		ctx.WithField("err", err).Warn("listing.RemoveMedia failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type commandFunc func(c ctx.Ctx, actor domain.Actor, id string) (*listing.Listing, error)

// command serves the lifecycle commands that carry no body
func (h *handler) command(name string, fn commandFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(ctx.Ctx)

		res, err := fn(ctx, authMiddleware.ActorOf(c), c.Param("id"))
		if err != nil {
			ctx.WithField("err", err).Warn(name + " failed")
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) extend(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		EndAt time.Time `json:"endAt" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Extend(ctx, authMiddleware.ActorOf(c), c.Param("id"), p.EndAt)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.Extend failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setStatus(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Status string `json:"status" validate:"required"`
		Reason string `json:"reason" validate:"max=1000"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.SetStatus(ctx, authMiddleware.ActorOf(c), c.Param("id"), listing.Status(p.Status), p.Reason)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.SetStatus failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) watch(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.listing.Watch(ctx, authMiddleware.ActorOf(c), c.Param("id")); err != nil {
		ctx.WithField("err", err).Warn("listing.Watch failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) unwatch(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.listing.Unwatch(ctx, authMiddleware.ActorOf(c), c.Param("id")); err != nil {
		ctx.WithField("err", err).Warn("listing.Unwatch failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) mine(c echo.Context) error {
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

	res, err := h.listing.FindMine(ctx, authMiddleware.ActorOf(c), status, p.Page, p.PageSize)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.FindMine failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) myWatchlist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &pagingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.MyWatchlist(ctx, authMiddleware.ActorOf(c), p.Page, p.PageSize)
	if err != nil {
		ctx.WithField("err", err).Warn("listing.MyWatchlist failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
