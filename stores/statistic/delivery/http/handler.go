package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/statistic"
	"github.com/x-xyz/settlement/middleware"
)

const cacheTtl = 10 * time.Second

type handler struct {
	statisticUC statistic.UseCase
}

func New(e *echo.Echo, statisticUC statistic.UseCase, rc *middleware.ResponseCache) {
	h := &handler{statisticUC}
	gs := e.Group("/collections/:collection/statistics", middleware.IsValidAddress("collection"), rc.CacheHttp(cacheTtl))
	gs.GET("", h.getAll)
	gs.GET("/:medium", h.get, middleware.IsValidAddress("medium"))
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	res, err := h.statisticUC.FindAll(ctx, domain.Address(c.Param("collection")))
	if err != nil {
		ctx.WithField("err", err).Error("statisticUC.FindAll failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	res, err := h.statisticUC.Get(ctx, domain.Address(c.Param("collection")), domain.Address(c.Param("medium")))
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
