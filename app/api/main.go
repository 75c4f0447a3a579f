package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/settlement/app/bootstrap"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/base/database/redisclient"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/marketplace"
	mmiddleware "github.com/x-xyz/settlement/middleware"
	"github.com/x-xyz/settlement/service/discord"
	"github.com/x-xyz/settlement/service/query"
	"github.com/x-xyz/settlement/service/redis"
	auth_usecase "github.com/x-xyz/settlement/stores/auth/usecase"
	hc_repo "github.com/x-xyz/settlement/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/settlement/stores/healthcheck/usecase"
)

// loadConfig reads the service config at path and applies the log level
func loadConfig(v *viper.Viper, path string) error {
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if v.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
	return nil
}

// marketplaceDefaults reads the marketplace section over the built in defaults
func marketplaceDefaults() marketplace.Config {
	cfg := marketplace.Default(domain.Address(viper.GetString("marketplace.feeRecipient")))
	if viper.IsSet("marketplace.feeBps") {
		cfg.FeeBps = viper.GetInt64("marketplace.feeBps")
	}
	if viper.IsSet("marketplace.maxRoyaltyBps") {
		cfg.MaxRoyaltyBps = viper.GetInt64("marketplace.maxRoyaltyBps")
	}
	if viper.IsSet("marketplace.minIncrementBps") {
		cfg.MinIncrementBps = viper.GetInt64("marketplace.minIncrementBps")
	}
	if viper.IsSet("marketplace.bidCooldown") {
		cfg.BidCooldown = viper.GetDuration("marketplace.bidCooldown")
	}
	if viper.IsSet("marketplace.extensionWindow") {
		cfg.ExtensionWindow = viper.GetDuration("marketplace.extensionWindow")
	}
	if viper.IsSet("marketplace.minOfferDuration") {
		cfg.MinOfferDuration = viper.GetDuration("marketplace.minOfferDuration")
	}
	if viper.IsSet("marketplace.maxOfferDuration") {
		cfg.MaxOfferDuration = viper.GetDuration("marketplace.maxOfferDuration")
	}
	return cfg
}

func admins() []domain.Address {
	res := []domain.Address{}
	for _, a := range viper.GetStringSlice("admins") {
		res = append(res, domain.Address(a).ToLower())
	}
	return res
}

func main() {
	if err := loadConfig(viper.GetViper(), `infra/configs/config.yaml`); err != nil {
		log.Log().WithField("err", err).Panic("loadConfig failed")
	}
	context := ctx.Background()

	var (
		mongoClient *mongoclient.Client
		q           query.Mongo
		redisCache  redis.Service
	)

	driver := viper.GetString("storage.driver")
	if driver == bootstrap.DriverMongo {
		context.Info("init mongo")
		uri := viper.GetString("mongo.uri")
		authDBName := viper.GetString("mongo.authDBName")
		dbName := viper.GetString("mongo.dbName")
		enableSSL := viper.GetBool("mongo.enableSSL")
		mongoClient = mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
		q = query.New(mongoClient)
	}

	if uri := viper.GetString("redis.uri"); uri != "" {
		context.Info("init redis")
		name := viper.GetString("redis.name")
		pool := redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(name, metrics.New(name), &redis.Pools{
			Src: pool,
		})
	}

	var notifier *discord.NotifierConfig
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		notifier = &discord.NotifierConfig{
			BotKey:    botKey,
			ChannelId: viper.GetString("discord.channelId"),
			AssetUrl:  viper.GetString("discord.assetUrl"),
		}
	}

	app, err := bootstrap.New(context, bootstrap.Config{
		Driver:      driver,
		Mongo:       q,
		Redis:       redisCache,
		Operator:    domain.Address(viper.GetString("custody.operator")),
		Admins:      admins(),
		Marketplace: marketplaceDefaults(),
		Discord:     notifier,
		CacheTtl:    viper.GetDuration("cache.ttl"),
	})
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.New failed")
	}

	e := newServer(serverCfg{
		App:         app,
		Auth:        auth_usecase.New(viper.GetString("jwt.secret"), viper.GetString("auth.signingMsg")),
		Cache:       mmiddleware.NewResponseCache(redisCache, viper.GetInt("cache.httpSizeMB")),
		HealthCheck: hc_usecase.New(hc_repo.New(mongoClient, redisCache)),
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
