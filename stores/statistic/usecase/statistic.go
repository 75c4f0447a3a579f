package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/statistic"
)

type uc struct {
	statisticRepo statistic.Repo
}

func New(repo statistic.Repo) statistic.UseCase {
	return &uc{repo}
}

// RecordSale folds a sale into the collection aggregate. It must run inside
// the transaction of the sale.
func (u *uc) RecordSale(ctx bCtx.Ctx, collection, medium domain.Address, price decimal.Decimal, at time.Time) (*statistic.CollectionStatistic, error) {
	id := statistic.CollectionStatisticId{Collection: collection.ToLower(), Medium: medium.ToLower()}
	s, err := u.statisticRepo.FindOne(ctx, id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.FindOne failed")
		return nil, err
	}
	if s == nil {
		s = &statistic.CollectionStatistic{
			Collection:    id.Collection,
			Medium:        id.Medium,
			Volume:        decimal.Zero,
			AveragePrice:  decimal.Zero,
			FloorPrice:    decimal.Zero,
			HighestSale:   decimal.Zero,
			LastSalePrice: decimal.Zero,
		}
	}

	s.Apply(price, at)

	if err := u.statisticRepo.Upsert(ctx, s); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("repo.Upsert failed")
		return nil, err
	}
	return s, nil
}

func (u *uc) Get(ctx bCtx.Ctx, collection, medium domain.Address) (*statistic.CollectionStatistic, error) {
	s, err := u.statisticRepo.FindOne(ctx, statistic.CollectionStatisticId{Collection: collection, Medium: medium})
	if err != nil {
		return nil, err
	} else if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (u *uc) FindAll(ctx bCtx.Ctx, collection domain.Address) ([]*statistic.CollectionStatistic, error) {
	return u.statisticRepo.FindAll(ctx, collection)
}
