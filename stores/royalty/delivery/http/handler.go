package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/middleware"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	royalty royalty.UseCase
}

func New(e *echo.Echo, royaltyUC royalty.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &handler{royaltyUC}

	e.GET("/royalties/:collection", h.get, middleware.IsValidAddress("collection"))

	g := e.Group("/admin/royalties", am.Auth(), am.IsAdmin())
	g.PUT("", h.set)
	g.DELETE("/:collection", h.remove, middleware.IsValidAddress("collection"))
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	r, err := h.royalty.FindOne(ctx, domain.Address(c.Param("collection")))
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, r)
}

func (h *handler) set(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type payload struct {
		Collection domain.Address `json:"collection" validate:"required,address"`
		Recipient  domain.Address `json:"recipient" validate:"required,address"`
		Bps        int64          `json:"bps" validate:"min=0,max=10000"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.royalty.Set(ctx, caller, royalty.Royalty{
		Collection: p.Collection,
		Recipient:  p.Recipient,
		Bps:        p.Bps,
	}); err != nil {
		ctx.WithField("err", err).Error("royalty.Set failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	if err := h.royalty.Remove(ctx, caller, domain.Address(c.Param("collection"))); err != nil {
		ctx.WithField("err", err).Error("royalty.Remove failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
