package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/offer"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	offer offer.UseCase
}

func New(e *echo.Echo, offerUC offer.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &handler{offerUC}

	e.GET("/listings/:id/offers", h.getByListing)

	g := e.Group("/offers")
	g.GET("", h.getAll)
	g.POST("", h.make, am.Auth())
	g.POST("/expire", h.expire)
	g.GET("/:id", h.get)
	g.POST("/:id/accept", h.accept, am.Auth())
	g.POST("/:id/cancel", h.cancel, am.Auth())
}

func parseId(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *handler) make(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	offerer := c.Get("address").(domain.Address)

	type payload struct {
		ListingId   int64           `json:"listingId" validate:"required"`
		Amount      decimal.Decimal `json:"amount" validate:"positive"`
		Medium      domain.Address  `json:"medium" validate:"required,address"`
		DurationSec int64           `json:"durationSec" validate:"required"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("c.Bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	duration, err := delivery.Seconds(p.DurationSec)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}

	o, err := h.offer.Make(ctx, p.ListingId, offerer, p.Amount, p.Medium, duration)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "listingId": p.ListingId}).Warn("offer.Make failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, o)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	o, err := h.offer.FindOne(ctx, id)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, o)
}

type searchParams struct {
	Offerer *domain.Address `query:"offerer"`
	Active  *bool           `query:"active"`
	Offset  int             `query:"offset"`
	Limit   int             `query:"limit"`
}

func (p *searchParams) options() []offer.FindAllOptionsFunc {
	opts := []offer.FindAllOptionsFunc{}
	if p.Offerer != nil {
		opts = append(opts, offer.WithOfferer(*p.Offerer))
	}
	if p.Active != nil {
		opts = append(opts, offer.WithActive(*p.Active))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, offer.WithPagination(p.Offset, p.Limit))
	}
	return opts
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &searchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	res, err := h.offer.FindAll(ctx, p.options()...)
	if err != nil {
		ctx.WithField("err", err).Error("offer.FindAll failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getByListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	p := &searchParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	res, err := h.offer.FindAll(ctx, append(p.options(), offer.WithListingId(id))...)
	if err != nil {
		ctx.WithField("err", err).Error("offer.FindAll failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) accept(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.offer.Accept(ctx, id, caller); err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": id}).Warn("offer.Accept failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.offer.Cancel(ctx, id, caller); err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": id}).Warn("offer.Cancel failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// expire is open to anyone; only lapsed offers are touched
func (h *handler) expire(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		OfferIds []int64 `json:"offerIds" validate:"required,min=1,max=500"`
	}
	p := &payload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	expired, err := h.offer.Expire(ctx, p.OfferIds)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "expired": len(expired)}).Warn("offer.Expire failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, expired)
}
