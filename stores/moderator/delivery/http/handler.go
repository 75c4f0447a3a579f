package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/moderator"
	"github.com/x-xyz/settlement/middleware"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	moderator moderator.Usecase
}

func New(e *echo.Echo, moderator moderator.Usecase, am *authMiddleware.AuthMiddleware) {
	h := &handler{moderator}

	g := e.Group("/admin/moderators", am.Auth(), am.IsAdmin())
	g.GET("", h.getAll)
	g.POST("", h.add)
	g.DELETE("/:address", h.remove, middleware.IsValidAddress("address"))
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.moderator.FindAll(ctx); err != nil {
		ctx.WithField("err", err).Error("moderator.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name    string         `json:"name"`
		Address domain.Address `json:"address" validate:"required,address"`
	}

	p := &payload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.moderator.Add(ctx, p.Address, p.Name); err != nil {
		ctx.WithField("err", err).Error("moderator.Add failed")
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.moderator.Remove(ctx, domain.Address(c.Param("address"))); err != nil {
		ctx.WithField("err", err).Error("moderator.Remove failed")
		return delivery.MakeErrResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
