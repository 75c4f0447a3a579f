package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/settlement/app/bootstrap"
	"github.com/x-xyz/settlement/base/backoff"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/database/mongoclient"
	"github.com/x-xyz/settlement/base/goroutine"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/service/query"
)

// loadConfig binds the command line flags into v and reads the config file they point at
func loadConfig(v *viper.Viper, args []string) error {
	flags := pflag.NewFlagSet("keeper", pflag.ContinueOnError)
	flags.String("config", "infra/configs/config.yaml", "path of the config file")
	flags.Duration("keeper.interval", 15*time.Second, "time between two sweeps")
	flags.Int("keeper.batchSize", 100, "max auctions and offers handled per sweep")
	flags.Int("keeper.workers", 4, "concurrent auction finalizations")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	v.SetConfigType("yaml")
	v.SetConfigFile(v.GetString("config"))
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if v.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Keeper RUN on DEBUG mode")
	}
	return nil
}

func main() {
	if err := loadConfig(viper.GetViper(), os.Args[1:]); err != nil {
		log.Log().WithField("err", err).Panic("loadConfig failed")
	}

	c, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	var q query.Mongo
	driver := viper.GetString("storage.driver")
	if driver == bootstrap.DriverMongo {
		c.Info("init mongo")
		mongoClient := mongoclient.MustConnectMongoClient(
			viper.GetString("mongo.uri"),
			viper.GetString("mongo.authDBName"),
			viper.GetString("mongo.dbName"),
			viper.GetBool("mongo.enableSSL"),
			true,
			2,
		)
		q = query.New(mongoClient)
	}

	app, err := bootstrap.New(c, bootstrap.Config{
		Driver:      driver,
		Mongo:       q,
		Operator:    domain.Address(viper.GetString("custody.operator")),
		Marketplace: marketplace.Default(domain.Address(viper.GetString("marketplace.feeRecipient"))),
	})
	if err != nil {
		c.WithField("err", err).Panic("bootstrap.New failed")
	}

	s := newSweeper(sweeperCfg{
		Auction:   app.Auction,
		Offer:     app.Offer,
		BatchSize: viper.GetInt("keeper.batchSize"),
		Workers:   viper.GetInt("keeper.workers"),
	})
	interval := viper.GetDuration("keeper.interval")

	done := make(chan struct{})
	go func() {
		defer close(done)
		goroutine.Supervise(c, "sweeper", func(c ctx.Ctx) {
			run(c, s, interval)
		}, backoff.NewExponential(time.Second, time.Minute))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	c.WithField("signal", sig).Info("received signal")
	cancel()
	<-done
	c.Info("keeper stopped")
}

// run sweeps every interval until c is done, backing off while the store fails
func run(c ctx.Ctx, s *sweeper, interval time.Duration) {
	b := backoff.NewExponential(time.Second, interval*4)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		res, err := s.sweep(c)
		if err != nil {
			c.WithField("err", err).Warn("sweep failed")
			if b.Backoff(c) != nil {
				return
			}
			continue
		}
		b.Reset()
		if len(res.Finalized) > 0 || len(res.Expired) > 0 || res.Failed > 0 {
			c.WithFields(log.Fields{
				"finalized": len(res.Finalized),
				"expired":   len(res.Expired),
				"failed":    res.Failed,
			}).Info("sweep done")
		}

		select {
		case <-c.Done():
			return
		case <-ticker.C:
		}
	}
}
