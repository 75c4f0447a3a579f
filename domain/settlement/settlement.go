package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/royalty"
)

type Source string

const (
	SourceBuyNow  Source = "buyNow"
	SourceAuction Source = "auction"
	SourceOffer   Source = "offer"
)

// Split is how one sale price is divided
type Split struct {
	SellerAmount     decimal.Decimal `json:"sellerAmount" bson:"sellerAmount"`
	FeeAmount        decimal.Decimal `json:"feeAmount" bson:"feeAmount"`
	FeeRecipient     domain.Address  `json:"feeRecipient" bson:"feeRecipient"`
	RoyaltyAmount    decimal.Decimal `json:"royaltyAmount" bson:"royaltyAmount"`
	RoyaltyRecipient domain.Address  `json:"royaltyRecipient,omitempty" bson:"royaltyRecipient,omitempty"`
}

// NewSplit divides price into fee, royalty and seller proceeds. The royalty is
// the quote capped at maxRoyaltyBps of price; a quote without recipient is ignored.
// SellerAmount + FeeAmount + RoyaltyAmount always equals price.
func NewSplit(price decimal.Decimal, feeBps int64, feeRecipient domain.Address, maxRoyaltyBps int64, quote royalty.Quote) Split {
	split := Split{
		FeeAmount:     bps.Of(price, feeBps),
		FeeRecipient:  feeRecipient,
		RoyaltyAmount: decimal.Zero,
	}
	if !quote.Recipient.IsEmpty() && quote.Amount.Sign() > 0 {
		split.RoyaltyAmount = bps.Min(quote.Amount, bps.Of(price, maxRoyaltyBps))
		if split.RoyaltyAmount.Sign() > 0 {
			split.RoyaltyRecipient = quote.Recipient
		}
	}
	split.SellerAmount = price.Sub(split.FeeAmount).Sub(split.RoyaltyAmount)
	return split
}

// Legs lists the payouts of the split for seller
func (s Split) Legs(seller domain.Address) []payment.Leg {
	return []payment.Leg{
		{To: seller, Amount: s.SellerAmount},
		{To: s.FeeRecipient, Amount: s.FeeAmount},
		{To: s.RoyaltyRecipient, Amount: s.RoyaltyAmount},
	}
}

// Sale is the receipt of a settled listing
type Sale struct {
	Id            string          `json:"id" bson:"_id"`
	ListingId     int64           `json:"listingId" bson:"listingId"`
	OfferId       int64           `json:"offerId,omitempty" bson:"offerId,omitempty"`
	Source        Source          `json:"source" bson:"source"`
	Seller        domain.Address  `json:"seller" bson:"seller"`
	Buyer         domain.Address  `json:"buyer" bson:"buyer"`
	Collection    domain.Address  `json:"collection" bson:"collection"`
	TokenId       domain.TokenId  `json:"tokenId" bson:"tokenId"`
	Medium        domain.Address  `json:"medium" bson:"medium"`
	Price         decimal.Decimal `json:"price" bson:"price"`
	Split         Split           `json:"split" bson:"split"`
	ConfigVersion int64           `json:"configVersion" bson:"configVersion"`
	Time          time.Time       `json:"time" bson:"time"`
}

// SaleRequest asks to settle a listing whose Price is already in escrow
type SaleRequest struct {
	ListingId int64
	Buyer     domain.Address
	Price     decimal.Decimal
	Source    Source
	OfferId   int64
}

type FindAllOptions struct {
	ListingId  *int64
	Buyer      *domain.Address
	Seller     *domain.Address
	Collection *domain.Address
	Offset     *int
	Limit      *int
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

func WithBuyer(buyer domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Buyer = buyer.ToLowerPtr()
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Collection = collection.ToLowerPtr()
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
	FindOne(c ctx.Ctx, id string) (*Sale, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Sale, error)
	Insert(c ctx.Ctx, s *Sale) error
}

type UseCase interface {
	// ExecuteSale is the only path that closes a listing as sold
	ExecuteSale(c ctx.Ctx, req SaleRequest) (*Sale, error)
	FindOne(c ctx.Ctx, id string) (*Sale, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Sale, error)
}
