package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/middleware"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	nftitem nftitem.UseCase
}

func New(e *echo.Echo, nftitemUC nftitem.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &handler{nftitemUC}

	g := e.Group("/nftitems/:collection/:tokenId", middleware.IsValidAddress("collection"))
	g.GET("", h.get)
	g.POST("/approve", h.approve, am.Auth())

	e.GET("/accounts/:address/nftitems", h.getByOwner, middleware.IsValidAddress("address"))

	e.POST("/admin/nftitems/mint", h.mint, am.Auth(), am.IsAdmin())
}

func assetOf(c echo.Context) nftitem.Id {
	return nftitem.Id{
		Collection: domain.Address(c.Param("collection")),
		TokenId:    domain.TokenId(c.Param("tokenId")),
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	item, err := h.nftitem.FindOne(ctx, assetOf(c))
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) getByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	items, err := h.nftitem.FindAll(ctx, domain.Address(c.Param("address")))
	if err != nil {
		ctx.WithField("err", err).Error("nftitem.FindAll failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, items)
}

// approve lets the holder grant or revoke an operator, usually the custody operator
func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := c.Get("address").(domain.Address)

	type payload struct {
		Operator domain.Address `json:"operator" validate:"required,address"`
		Approved bool           `json:"approved"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.nftitem.Approve(ctx, assetOf(c), owner, p.Operator, p.Approved); err != nil {
		ctx.WithFields(log.Fields{"err": err, "owner": owner}).Warn("nftitem.Approve failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Collection domain.Address `json:"collection" validate:"required,address"`
		TokenId    domain.TokenId `json:"tokenId" validate:"required"`
		Owner      domain.Address `json:"owner" validate:"required,address"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.nftitem.Mint(ctx, nftitem.Id{Collection: p.Collection, TokenId: p.TokenId}, p.Owner); err != nil {
		ctx.WithField("err", err).Error("nftitem.Mint failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, nil)
}
