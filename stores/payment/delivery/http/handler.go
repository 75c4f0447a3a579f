package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/middleware"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	rail payment.Rail
}

func New(e *echo.Echo, rail payment.Rail, am *authMiddleware.AuthMiddleware) {
	h := &handler{rail}

	e.GET("/accounts/:address/balances", h.getBalances, middleware.IsValidAddress("address"))

	g := e.Group("/admin/balances", am.Auth(), am.IsAdmin())
	g.POST("/credit", h.credit)
	g.POST("/freeze", h.freeze)
}

func (h *handler) getBalances(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	accounts, err := h.rail.Accounts(ctx, domain.Address(c.Param("address")))
	if err != nil {
		ctx.WithField("err", err).Error("rail.Accounts failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, accounts)
}

func (h *handler) credit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Owner  domain.Address  `json:"owner" validate:"required,address"`
		Medium domain.Address  `json:"medium" validate:"required,address"`
		Amount decimal.Decimal `json:"amount" validate:"positive"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.rail.Credit(ctx, p.Owner, p.Medium, p.Amount); err != nil {
		ctx.WithFields(log.Fields{"err": err, "owner": p.Owner}).Warn("rail.Credit failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) freeze(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Owner  domain.Address `json:"owner" validate:"required,address"`
		Medium domain.Address `json:"medium" validate:"required,address"`
		Frozen bool           `json:"frozen"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.rail.SetFrozen(ctx, p.Owner, p.Medium, p.Frozen); err != nil {
		ctx.WithFields(log.Fields{"err": err, "owner": p.Owner}).Error("rail.SetFrozen failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
