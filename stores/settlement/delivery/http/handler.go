package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/settlement"
)

type handler struct {
	settlement settlement.UseCase
}

func New(e *echo.Echo, settlementUC settlement.UseCase) {
	h := &handler{settlementUC}

	g := e.Group("/sales")
	g.GET("", h.getAll)
	g.GET("/:id", h.get)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	s, err := h.settlement.FindOne(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, s)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ListingId  *int64          `query:"listingId"`
		Buyer      *domain.Address `query:"buyer"`
		Seller     *domain.Address `query:"seller"`
		Collection *domain.Address `query:"collection"`
		Offset     int             `query:"offset"`
		Limit      int             `query:"limit"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []settlement.FindAllOptionsFunc{}
	if p.ListingId != nil {
		opts = append(opts, settlement.WithListingId(*p.ListingId))
	}
	if p.Buyer != nil {
		opts = append(opts, settlement.WithBuyer(*p.Buyer))
	}
	if p.Seller != nil {
		opts = append(opts, settlement.WithSeller(*p.Seller))
	}
	if p.Collection != nil {
		opts = append(opts, settlement.WithCollection(*p.Collection))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, settlement.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.settlement.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("settlement.FindAll failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
