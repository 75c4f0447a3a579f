package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/middleware"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	paytoken domain.PayTokenUsecase
}

func New(e *echo.Echo, paytoken domain.PayTokenUsecase, am *authMiddleware.AuthMiddleware) {
	h := &handler{paytoken}

	e.GET("/paytokens", h.getAll)

	g := e.Group("/admin/paytokens", am.Auth(), am.IsAdmin())
	g.PUT("", h.upsert)
	g.POST("/:address/enabled", h.setEnabled, middleware.IsValidAddress("address"))
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.paytoken.FindAll(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("paytoken.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) upsert(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name          string         `json:"name" validate:"required"`
		Symbol        string         `json:"symbol" validate:"required"`
		TokenDecimals int32          `json:"tokenDecimals" validate:"min=0,max=36"`
		Address       domain.Address `json:"address" validate:"required,address"`
		Enabled       bool           `json:"enabled"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	token := &domain.PayToken{
		Name:          p.Name,
		Symbol:        p.Symbol,
		TokenDecimals: p.TokenDecimals,
		Address:       p.Address,
		Enabled:       p.Enabled,
	}
	if err := h.paytoken.Upsert(ctx, token); err != nil {
		ctx.WithField("err", err).Error("paytoken.Upsert failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, token)
}

func (h *handler) setEnabled(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Enabled bool `json:"enabled"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.paytoken.SetEnabled(ctx, domain.Address(c.Param("address")), p.Enabled); err != nil {
		ctx.WithField("err", err).Error("paytoken.SetEnabled failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
