package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/listing"
)

// BidderState tracks the last accepted bid of a bidder across every auction
type BidderState struct {
	Bidder      domain.Address `json:"bidder" bson:"_id"`
	LastBidAt   time.Time      `json:"lastBidAt" bson:"lastBidAt"`
	LastListing int64          `json:"lastListing" bson:"lastListing"`
}

type BidderRepo interface {
	// FindOne returns nil without error for a bidder that never bid
	FindOne(c ctx.Ctx, bidder domain.Address) (*BidderState, error)
	Upsert(c ctx.Ctx, s *BidderState) error
}

// BidResult describes what an accepted bid did to the auction
type BidResult struct {
	Listing  *listing.Listing `json:"listing"`
	Extended bool             `json:"extended"`
	// Settled is set when the bid met the buy now price
	Settled bool `json:"settled"`
}

type UseCase interface {
	PlaceBid(c ctx.Ctx, listingId int64, bidder domain.Address, amount decimal.Decimal) (*BidResult, error)
	// Finalize closes an ended auction, settling it when the reserve is met
	Finalize(c ctx.Ctx, listingId int64) (*listing.Listing, error)
	// FindEnded lists active auctions past their end time, earliest end first
	FindEnded(c ctx.Ctx, offset, limit int) ([]*listing.Listing, error)
}
