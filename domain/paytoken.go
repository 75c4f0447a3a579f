package domain

import (
	"github.com/x-xyz/settlement/base/ctx"
)

type PayTokenId struct {
	Address Address `bson:"address"`
}

// PayToken is a payment medium accepted by the marketplace. EmptyAddress is the native currency.
type PayToken struct {
	Name          string  `json:"name" bson:"name"`
	Symbol        string  `json:"symbol" bson:"symbol"`
	TokenDecimals int32   `json:"tokenDecimals" bson:"tokenDecimals"`
	Address       Address `json:"address" bson:"address"`
	Enabled       bool    `json:"enabled" bson:"enabled"`
}

func (t *PayToken) ToId() *PayTokenId {
	return &PayTokenId{
		Address: t.Address,
	}
}

type PayTokenRepo interface {
	FindAll(ctx.Ctx) ([]*PayToken, error)
	// FindOne returns nil without error when the medium is unknown
	FindOne(ctx.Ctx, Address) (*PayToken, error)
	Upsert(ctx.Ctx, *PayToken) error
}

type PayTokenUsecase interface {
	FindAll(ctx.Ctx) ([]*PayToken, error)
	IsAccepted(ctx.Ctx, Address) (bool, error)
	Upsert(ctx.Ctx, *PayToken) error
	SetEnabled(ctx.Ctx, Address, bool) error
}
