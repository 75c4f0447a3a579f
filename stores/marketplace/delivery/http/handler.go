package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/delivery"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/marketplace"
	authMiddleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
}

func New(e *echo.Echo, marketplaceUC marketplace.UseCase, am *authMiddleware.AuthMiddleware) {
	h := &handler{marketplaceUC}

	e.GET("/config", h.get)
	e.GET("/config/:version", h.getVersion)

	g := e.Group("/admin", am.Auth(), am.IsAdmin())
	g.PATCH("/config", h.update)
	g.POST("/pause", h.pause)
	g.POST("/unpause", h.unpause)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	cfg, err := h.marketplace.Get(ctx)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}

func (h *handler) getVersion(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	version, err := strconv.ParseInt(c.Param("version"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid version")
	}
	cfg, err := h.marketplace.GetVersion(ctx, version)
	if err != nil {
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := marketplace.Patchable{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	cfg, err := h.marketplace.Update(ctx, caller, p)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "caller": caller}).Warn("marketplace.Update failed")
		return delivery.MakeErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}

func (h *handler) pause(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	cfg, err := h.marketplace.Pause(ctx, caller)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "caller": caller}).Error("marketplace.Pause failed")
		return delivery.MakeErrResp(c, err)
	}
	ctx.WithField("version", cfg.Version).Info("marketplace paused")
	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}

func (h *handler) unpause(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	cfg, err := h.marketplace.Unpause(ctx, caller)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "caller": caller}).Error("marketplace.Unpause failed")
		return delivery.MakeErrResp(c, err)
	}
	ctx.WithField("version", cfg.Version).Info("marketplace unpaused")
	return delivery.MakeJsonResp(c, http.StatusOK, cfg)
}
