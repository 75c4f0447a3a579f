package activity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

type ActivityHistoryType string

const (
	// listing
	ActivityHistoryTypeList          ActivityHistoryType = "list"
	ActivityHistoryTypeCancelListing ActivityHistoryType = "cancelListing"

	// auction
	ActivityHistoryTypePlaceBid        ActivityHistoryType = "placeBid"
	ActivityHistoryTypeAuctionExtended ActivityHistoryType = "auctionExtended"
	ActivityHistoryTypeBidRefunded     ActivityHistoryType = "bidRefunded"
	ActivityHistoryTypeResultAuction   ActivityHistoryType = "resultAuction"
	ActivityHistoryTypeAuctionExpired  ActivityHistoryType = "auctionExpired"

	// offer
	ActivityHistoryTypeCreateOffer  ActivityHistoryType = "createOffer"
	ActivityHistoryTypeAcceptOffer  ActivityHistoryType = "acceptOffer"
	ActivityHistoryTypeCancelOffer  ActivityHistoryType = "cancelOffer"
	ActivityHistoryTypeOfferExpired ActivityHistoryType = "offerExpired"

	// settlement
	ActivityHistoryTypeSale ActivityHistoryType = "sale"
)

// ActivityHistory is one state change signal. It is published after the
// transaction that produced it commits.
type ActivityHistory struct {
	Id         string              `json:"id" bson:"_id"`
	Type       ActivityHistoryType `json:"type" bson:"type"`
	ListingId  int64               `json:"listingId" bson:"listingId"`
	OfferId    int64               `json:"offerId,omitempty" bson:"offerId,omitempty"`
	Collection domain.Address      `json:"collection" bson:"collection"`
	TokenId    domain.TokenId      `json:"tokenId" bson:"tokenId"`
	Account    domain.Address      `json:"account" bson:"account"`
	To         domain.Address      `json:"to,omitempty" bson:"to,omitempty"`
	Price      decimal.Decimal     `json:"price" bson:"price"`
	Medium     domain.Address      `json:"medium" bson:"medium"`
	EndTime    *time.Time          `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Time       time.Time           `json:"time" bson:"time"`
}

type FindAllOptions struct {
	ListingId  *int64
	Account    *domain.Address
	Collection *domain.Address
	Types      []ActivityHistoryType
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

func WithAccount(account domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		account = account.ToLower()
		o.Account = &account
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		collection = collection.ToLower()
		o.Collection = &collection
		return nil
	}
}

func WithTypes(types ...ActivityHistoryType) FindAllOptionsFunc {
	return func(o *FindAllOptions) error {
		o.Types = types
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
	Insert(c ctx.Ctx, a *ActivityHistory) error
	// FindAll returns matches newest first
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*ActivityHistory, error)
}

// Publisher receives committed activities. Implementations log their own
// failures; a committed operation is never undone by a publish error.
type Publisher interface {
	Publish(c ctx.Ctx, activities []*ActivityHistory)
}

type UseCase interface {
	Publisher
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*ActivityHistory, error)
}
