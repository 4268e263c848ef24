package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mazad/goapi/base/ctx"
	"github.com/mazad/goapi/base/delivery"
	"github.com/mazad/goapi/domain/category"
	authMiddleware "github.com/mazad/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	category category.Usecase
}

func New(e *echo.Echo, category category.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{category}

	g := e.Group("/categories")
	g.GET("", h.tree)
	g.GET("/:id", h.get)
	g.GET("/slug/:slug", h.getBySlug)
	g.POST("", h.create, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) tree(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.category.Tree(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("category.Tree failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.category.FindOne(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBySlug(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.category.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ParentId         *string `json:"parentId"`
		Name             string  `json:"name" validate:"required,max=100"`
		Slug             string  `json:"slug" validate:"omitempty,slug"`
		AttributesSchema string  `json:"attributesSchema" validate:"omitempty,json"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.category.Create(ctx, authMiddleware.ActorOf(c), category.CreateParams{
		ParentId:         p.ParentId,
		Name:             p.Name,
		Slug:             p.Slug,
		AttributesSchema: p.AttributesSchema,
	})
	if err != nil {
		ctx.WithField("err", err).Warn("category.Create failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}
