package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
)

type Kind string

const (
	KindFixedPrice Kind = "fixedPrice"
	KindAuction    Kind = "auction"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Terms are the seller supplied conditions of a listing
type Terms struct {
	Kind          Kind            `json:"kind" validate:"oneof=fixedPrice auction"`
	Medium        domain.Address  `json:"medium"`
	Price         decimal.Decimal `json:"price"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	ReservePrice  decimal.Decimal `json:"reservePrice"`
	BuyNowPrice   decimal.Decimal `json:"buyNowPrice"`
	// StartTime defaults to now
	StartTime *time.Time    `json:"startTime"`
	Duration  time.Duration `json:"duration"`
}

type Listing struct {
	Id            int64           `json:"id" bson:"_id"`
	Seller        domain.Address  `json:"seller" bson:"seller"`
	Collection    domain.Address  `json:"collection" bson:"collection"`
	TokenId       domain.TokenId  `json:"tokenId" bson:"tokenId"`
	Kind          Kind            `json:"kind" bson:"kind"`
	Medium        domain.Address  `json:"medium" bson:"medium"`
	Price         decimal.Decimal `json:"price" bson:"price"`
	StartingPrice decimal.Decimal `json:"startingPrice" bson:"startingPrice"`
	ReservePrice  decimal.Decimal `json:"reservePrice" bson:"reservePrice"`
	BuyNowPrice   decimal.Decimal `json:"buyNowPrice" bson:"buyNowPrice"`
	StartTime     time.Time       `json:"startTime" bson:"startTime"`
	EndTime       time.Time       `json:"endTime" bson:"endTime"`
	Status        Status          `json:"status" bson:"status"`

	HighestBidder domain.Address  `json:"highestBidder" bson:"highestBidder"`
	HighestBid    decimal.Decimal `json:"highestBid" bson:"highestBid"`
	BidCount      int64           `json:"bidCount" bson:"bidCount"`
	Extensions    int64           `json:"extensions" bson:"extensions"`

	Buyer     domain.Address  `json:"buyer,omitempty" bson:"buyer"`
	SoldPrice decimal.Decimal `json:"soldPrice" bson:"soldPrice"`
	ClosedAt  *time.Time      `json:"closedAt,omitempty" bson:"closedAt"`

	ConfigVersion int64     `json:"configVersion" bson:"configVersion"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

func (l *Listing) Asset() nftitem.Id {
	return nftitem.Id{Collection: l.Collection, TokenId: l.TokenId}
}

func (l *Listing) IsAuction() bool {
	return l.Kind == KindAuction
}

func (l *Listing) IsActive() bool {
	return l.Status == StatusActive
}

// HasBid reports whether an auction holds a standing bid
func (l *Listing) HasBid() bool {
	return !l.HighestBidder.IsEmpty() && l.HighestBid.Sign() > 0
}

func (l *Listing) HasBuyNow() bool {
	return l.BuyNowPrice.Sign() > 0
}

// Patchable lists the mutable fields of a listing; nil fields are left untouched
type Patchable struct {
	Status        *Status          `bson:"status"`
	EndTime       *time.Time       `bson:"endTime"`
	HighestBidder *domain.Address  `bson:"highestBidder"`
	HighestBid    *decimal.Decimal `bson:"highestBid"`
	BidCount      *int64           `bson:"bidCount"`
	Extensions    *int64           `bson:"extensions"`
	Buyer         *domain.Address  `bson:"buyer"`
	SoldPrice     *decimal.Decimal `bson:"soldPrice"`
	ClosedAt      *time.Time       `bson:"closedAt"`
}

type FindAllOptions struct {
	Seller     *domain.Address
	Collection *domain.Address
	TokenId    *domain.TokenId
	Status     *Status
	Kind       *Kind
	EndBefore  *time.Time
	SortBy     *string
	SortDir    *domain.SortDir
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

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Seller = seller.ToLowerPtr()
		return nil
	}
}

func WithAsset(id nftitem.Id) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Collection = id.Collection.ToLowerPtr()
		tokenId := id.TokenId
		o.TokenId = &tokenId
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Collection = collection.ToLowerPtr()
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Status = &status
		return nil
	}
}

func WithKind(kind Kind) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Kind = &kind
		return nil
	}
}

// WithEndBefore keeps listings whose end time is at or before t
func WithEndBefore(t time.Time) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.EndBefore = &t
		return nil
	}
}

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.SortBy = &sortBy
		o.SortDir = &sortDir
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
	FindOne(c ctx.Ctx, id int64) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Insert(c ctx.Ctx, l *Listing) error
	// UpdateIf patches the listing only while its status equals expected.
	// Returns domain.ErrNotFound when no listing matched.
	UpdateIf(c ctx.Ctx, id int64, expected Status, patch Patchable) error
}

type UseCase interface {
	Create(c ctx.Ctx, seller domain.Address, asset nftitem.Id, terms Terms) (*Listing, error)
	Cancel(c ctx.Ctx, id int64, caller domain.Address) error
	// Buy purchases a fixed price listing at its price
	Buy(c ctx.Ctx, id int64, buyer domain.Address) error
	FindOne(c ctx.Ctx, id int64) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}
