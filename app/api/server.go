package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/settlement/app/api/docs"

	"github.com/x-xyz/settlement/app/bootstrap"
	bValidator "github.com/x-xyz/settlement/base/validator"
	"github.com/x-xyz/settlement/domain"
	hcdomain "github.com/x-xyz/settlement/domain/healthcheck"
	mmiddleware "github.com/x-xyz/settlement/middleware"
	activity_delivery "github.com/x-xyz/settlement/stores/activity/delivery/http"
	auction_delivery "github.com/x-xyz/settlement/stores/auction/delivery/http"
	auth_delivery "github.com/x-xyz/settlement/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/settlement/stores/auth/delivery/http/middleware"
	hc_delivery "github.com/x-xyz/settlement/stores/healthcheck/delivery/http"
	listing_delivery "github.com/x-xyz/settlement/stores/listing/delivery/http"
	marketplace_delivery "github.com/x-xyz/settlement/stores/marketplace/delivery/http"
	moderator_delivery "github.com/x-xyz/settlement/stores/moderator/delivery/http"
	nftitem_delivery "github.com/x-xyz/settlement/stores/nftitem/delivery/http"
	offer_delivery "github.com/x-xyz/settlement/stores/offer/delivery/http"
	payment_delivery "github.com/x-xyz/settlement/stores/payment/delivery/http"
	paytoken_delivery "github.com/x-xyz/settlement/stores/paytoken/delivery/http"
	royalty_delivery "github.com/x-xyz/settlement/stores/royalty/delivery/http"
	settlement_delivery "github.com/x-xyz/settlement/stores/settlement/delivery/http"
	statistic_delivery "github.com/x-xyz/settlement/stores/statistic/delivery/http"
)

type serverCfg struct {
	App         *bootstrap.App
	Auth        domain.AuthUsecase
	Cache       *mmiddleware.ResponseCache
	HealthCheck hcdomain.HealthCheckUsecase
}

// newServer builds the echo instance with every route of the service
func newServer(cfg serverCfg) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	app := cfg.App
	am := auth_middleware.New(cfg.Auth, app.Moderator)

	hc_delivery.New(e, cfg.HealthCheck)
	auth_delivery.New(e, cfg.Auth)
	listing_delivery.New(e, app.Listing, am)
	auction_delivery.New(e, app.Auction, am)
	offer_delivery.New(e, app.Offer, am)
	settlement_delivery.New(e, app.Settlement)
	statistic_delivery.New(e, app.Statistic, cfg.Cache)
	activity_delivery.New(e, app.Activity)
	nftitem_delivery.New(e, app.NftItem, am)
	payment_delivery.New(e, app.Payment, am)
	paytoken_delivery.New(e, app.PayToken, am)
	royalty_delivery.New(e, app.Royalty, am)
	marketplace_delivery.New(e, app.Marketplace, am)
	moderator_delivery.New(e, app.Moderator, am)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
