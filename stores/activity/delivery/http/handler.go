package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
)

type handler struct {
	activity activity.UseCase
}

func New(e *echo.Echo, activityUC activity.UseCase) {
	h := &handler{activityUC}
	e.GET("/activities", h.getAll)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ListingId  *int64                         `query:"listingId"`
		Account    *domain.Address                `query:"account"`
		Collection *domain.Address                `query:"collection"`
		Types      []activity.ActivityHistoryType `query:"types"`
		Offset     int                            `query:"offset"`
		Limit      int                            `query:"limit"`
	}
	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []activity.FindAllOptionsFunc{}
	if p.ListingId != nil {
		opts = append(opts, activity.WithListingId(*p.ListingId))
	}
	if p.Account != nil {
		opts = append(opts, activity.WithAccount(*p.Account))
	}
	if p.Collection != nil {
		opts = append(opts, activity.WithCollection(*p.Collection))
	}
	if len(p.Types) > 0 {
		opts = append(opts, activity.WithTypes(p.Types...))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, activity.WithPagination(p.Offset, p.Limit))
	} else {
		opts = append(opts, activity.WithPagination(0, 100))
	}

	res, err := h.activity.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("activity.FindAll failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
