package offer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

type Disposition string

const (
	DispositionAccepted  Disposition = "accepted"
	DispositionCancelled Disposition = "cancelled"
	DispositionExpired   Disposition = "expired"
)

// Offer is a standing proposal to buy a fixed price listing. Amount stays in
// escrow while Active.
type Offer struct {
	Id          int64           `json:"id" bson:"_id"`
	ListingId   int64           `json:"listingId" bson:"listingId"`
	Offerer     domain.Address  `json:"offerer" bson:"offerer"`
	Amount      decimal.Decimal `json:"amount" bson:"amount"`
	Medium      domain.Address  `json:"medium" bson:"medium"`
	Expiration  time.Time       `json:"expiration" bson:"expiration"`
	Active      bool            `json:"active" bson:"active"`
	Disposition Disposition     `json:"disposition,omitempty" bson:"disposition,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	ClosedAt    *time.Time      `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
}

func (o *Offer) IsExpired(now time.Time) bool {
	return !now.Before(o.Expiration)
}

type FindAllOptions struct {
	ListingId     *int64
	Offerer       *domain.Address
	Active        *bool
	ExpiredBefore *time.Time
	Offset        *int
	Limit         *int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithListingId(id int64) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.ListingId = &id
		return nil
	}
}

func WithOfferer(offerer domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Offerer = offerer.ToLowerPtr()
		return nil
	}
}

func WithActive(active bool) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Active = &active
		return nil
	}
}

// WithExpiredBefore keeps offers whose expiration is at or before t
func WithExpiredBefore(t time.Time) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.ExpiredBefore = &t
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Offset = &offset
		o.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindOne(c ctx.Ctx, id int64) (*Offer, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	Insert(c ctx.Ctx, o *Offer) error
	// Deactivate closes an active offer with the given disposition.
	// Returns domain.ErrNotFound when the offer is missing or already inactive.
	Deactivate(c ctx.Ctx, id int64, disposition Disposition, at time.Time) error
}

type UseCase interface {
	Make(c ctx.Ctx, listingId int64, offerer domain.Address, amount decimal.Decimal, medium domain.Address, duration time.Duration) (*Offer, error)
	Accept(c ctx.Ctx, offerId int64, caller domain.Address) error
	Cancel(c ctx.Ctx, offerId int64, caller domain.Address) error
	// Expire refunds every listed offer that is active and past its expiration.
	// Other ids are skipped. It returns the ids it expired.
	Expire(c ctx.Ctx, offerIds []int64) ([]int64, error)
	FindOne(c ctx.Ctx, id int64) (*Offer, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
}
