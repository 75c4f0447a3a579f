package statistic

import (
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// CollectionStatistic aggregates the sales of one collection in one medium
type CollectionStatistic struct {
	Collection    domain.Address  `json:"collection" bson:"collection"`
	Medium        domain.Address  `json:"medium" bson:"medium"`
	Volume        decimal.Decimal `json:"volume" bson:"volume"`
	SaleCount     int64           `json:"saleCount" bson:"saleCount"`
	AveragePrice  decimal.Decimal `json:"averagePrice" bson:"averagePrice"`
	FloorPrice    decimal.Decimal `json:"floorPrice" bson:"floorPrice"`
	HighestSale   decimal.Decimal `json:"highestSale" bson:"highestSale"`
	LastSalePrice decimal.Decimal `json:"lastSalePrice" bson:"lastSalePrice"`
	LastSaleAt    time.Time       `json:"lastSaleAt" bson:"lastSaleAt"`
}

type CollectionStatisticId struct {
	Collection domain.Address `bson:"collection"`
	Medium     domain.Address `bson:"medium"`
}

func (s *CollectionStatistic) ToId() CollectionStatisticId {
	return CollectionStatisticId{Collection: s.Collection, Medium: s.Medium}
}

// Apply folds one sale into s
func (s *CollectionStatistic) Apply(price decimal.Decimal, at time.Time) {
	if s.SaleCount == 0 || price.LessThan(s.FloorPrice) {
		s.FloorPrice = price
	}
	if price.GreaterThan(s.HighestSale) {
		s.HighestSale = price
	}
	s.Volume = s.Volume.Add(price)
	s.SaleCount++
	s.AveragePrice, _ = s.Volume.QuoRem(decimal.NewFromInt(s.SaleCount), 0)
	s.LastSalePrice = price
	if at.After(s.LastSaleAt) {
		s.LastSaleAt = at
	}
}

type Repo interface {
	// FindOne returns nil without error for a collection with no sales
	FindOne(ctx bCtx.Ctx, id CollectionStatisticId) (*CollectionStatistic, error)
	FindAll(ctx bCtx.Ctx, collection domain.Address) ([]*CollectionStatistic, error)
	Upsert(ctx bCtx.Ctx, s *CollectionStatistic) error
}

type UseCase interface {
	RecordSale(ctx bCtx.Ctx, collection, medium domain.Address, price decimal.Decimal, at time.Time) (*CollectionStatistic, error)
	Get(ctx bCtx.Ctx, collection, medium domain.Address) (*CollectionStatistic, error)
	FindAll(ctx bCtx.Ctx, collection domain.Address) ([]*CollectionStatistic, error)
}
