package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/nftitem"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.UseCase
}

func New(e *echo.Echo, listingUC listing.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &handler{listingUC}

	g := e.Group("/listings")
	g.GET("", h.getAll)
	g.POST("", h.create, am.Auth())
	g.GET("/:id", h.get)
	g.POST("/:id/cancel", h.cancel, am.Auth())
	g.POST("/:id/buy", h.buy, am.Auth())
}

// ParseId reads the listing id path parameter
func ParseId(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("address").(domain.Address)

	type payload struct {
		Collection    domain.Address  `json:"collection" validate:"required,address"`
		TokenId       domain.TokenId  `json:"tokenId" validate:"required"`
		Kind          listing.Kind    `json:"kind" validate:"oneof=fixedPrice auction"`
		Medium        domain.Address  `json:"medium" validate:"required,address"`
		Price         decimal.Decimal `json:"price"`
		StartingPrice decimal.Decimal `json:"startingPrice"`
		ReservePrice  decimal.Decimal `json:"reservePrice"`
		BuyNowPrice   decimal.Decimal `json:"buyNowPrice"`
		StartTime     *time.Time      `json:"startTime"`
		DurationSec   int64           `json:"durationSec"`
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

	asset := nftitem.Id{Collection: p.Collection, TokenId: p.TokenId}
	l, err := h.listing.Create(ctx, seller, asset, listing.Terms{
		Kind:          p.Kind,
		Medium:        p.Medium,
		Price:         p.Price,
		StartingPrice: p.StartingPrice,
		ReservePrice:  p.ReservePrice,
		BuyNowPrice:   p.BuyNowPrice,
		StartTime:     p.StartTime,
		Duration:      duration,
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "seller": seller}).Warn("listing.Create failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, l)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := ParseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	l, err := h.listing.FindOne(ctx, id)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, l)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Seller     *domain.Address `query:"seller"`
		Collection *domain.Address `query:"collection"`
		TokenId    *domain.TokenId `query:"tokenId"`
		Status     *listing.Status `query:"status"`
		Kind       *listing.Kind   `query:"kind"`
		SortBy     *string         `query:"sortBy"`
		SortDir    *domain.SortDir `query:"sortDir"`
		Offset     int             `query:"offset"`
		Limit      int             `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []listing.FindAllOptionsFunc{}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(*p.Seller))
	}
	if p.Collection != nil && p.TokenId != nil {
		opts = append(opts, listing.WithAsset(nftitem.Id{Collection: *p.Collection, TokenId: *p.TokenId}))
	} else if p.Collection != nil {
		opts = append(opts, listing.WithCollection(*p.Collection))
	}
	if p.Status != nil {
		opts = append(opts, listing.WithStatus(*p.Status))
	}
	if p.Kind != nil {
		opts = append(opts, listing.WithKind(*p.Kind))
	}
	if p.SortBy != nil {
		dir := domain.SortDirDesc
		if p.SortDir != nil {
			dir = *p.SortDir
		}
		opts = append(opts, listing.WithSort(*p.SortBy, dir))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, listing.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.listing.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("listing.FindAll failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := ParseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.listing.Cancel(ctx, id, caller); err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": id}).Warn("listing.Cancel failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	id, err := ParseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.listing.Buy(ctx, id, buyer); err != nil {
		ctx.WithFields(log.Fields{"err": err, "id": id}).Warn("listing.Buy failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
