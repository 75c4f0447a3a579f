package royalty

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// Royalty is the creator share declared for a collection
type Royalty struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	Recipient  domain.Address `json:"recipient" bson:"recipient"`
	Bps        int64          `json:"bps" bson:"bps"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Quote is a royalty answer for one sale price
type Quote struct {
	Recipient domain.Address
	Amount    decimal.Decimal
}

type Repo interface {
	FindOne(c ctx.Ctx, collection domain.Address) (*Royalty, error)
	Upsert(c ctx.Ctx, r *Royalty) error
	Delete(c ctx.Ctx, collection domain.Address) error
}

// Policy answers the royalty owed on a sale. Collections without a declaration owe nothing.
type Policy interface {
	Quote(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, price decimal.Decimal) (Quote, error)
}

type UseCase interface {
	Policy
	FindOne(c ctx.Ctx, collection domain.Address) (*Royalty, error)
	Set(c ctx.Ctx, caller domain.Address, r Royalty) error
	Remove(c ctx.Ctx, caller, collection domain.Address) error
}
