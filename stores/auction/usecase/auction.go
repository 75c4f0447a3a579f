package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/base/ptr"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/auction"
	"github.com/x-xyz/settlement/domain/custody"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/service/outbox"
)

var met = metrics.New("auction")

type AuctionUseCaseCfg struct {
	Listing     listing.Repo
	Bidders     auction.BidderRepo
	Tx          domain.TxRunner
	Marketplace marketplace.UseCase
	Rail        payment.Rail
	Custody     custody.UseCase
	Settlement  settlement.UseCase
	Now         func() time.Time
}

type impl struct {
	listing     listing.Repo
	bidders     auction.BidderRepo
	tx          domain.TxRunner
	marketplace marketplace.UseCase
	rail        payment.Rail
	custody     custody.UseCase
	settlement  settlement.UseCase
	now         func() time.Time
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		listing:     cfg.Listing,
		bidders:     cfg.Bidders,
		tx:          cfg.Tx,
		marketplace: cfg.Marketplace,
		rail:        cfg.Rail,
		custody:     cfg.Custody,
		settlement:  cfg.Settlement,
		now:         now,
	}
}

// minNextBid is the lowest amount that may outbid the standing bid of l
func minNextBid(l *listing.Listing, incrementBps int64) decimal.Decimal {
	if !l.HasBid() {
		return l.StartingPrice
	}
	return l.HighestBid.Add(bps.CeilOf(l.HighestBid, incrementBps))
}

func (im *impl) refund(c ctx.Ctx, l *listing.Listing, at time.Time) error {
	if err := im.rail.Refund(c, l.HighestBidder, l.Medium, l.HighestBid); err != nil {
		c.WithFields(log.Fields{"err": err, "listingId": l.Id, "bidder": l.HighestBidder}).Warn("rail.Refund failed")
		return err
	}
	outbox.Emit(c, &activity.ActivityHistory{
		Type:       activity.ActivityHistoryTypeBidRefunded,
		ListingId:  l.Id,
		Collection: l.Collection,
		TokenId:    l.TokenId,
		Account:    l.HighestBidder,
		Price:      l.HighestBid,
		Medium:     l.Medium,
		Time:       at,
	})
	return nil
}

func (im *impl) PlaceBid(c ctx.Ctx, listingId int64, bidder domain.Address, amount decimal.Decimal) (*auction.BidResult, error) {
	cfg, err := im.marketplace.Active(c)
	if err != nil {
		return nil, err
	}
	if bidder.IsEmpty() {
		return nil, xerrors.Errorf("missing bidder: %w", domain.ErrBadParamInput)
	}
	if amount.Sign() <= 0 || !bps.IsWhole(amount) {
		return nil, xerrors.Errorf("bid %s: %w", amount, domain.ErrInvalidPrice)
	}
	bidder = bidder.ToLower()

	res := &auction.BidResult{}
	err = im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		res.Extended, res.Settled = false, false

		l, err := im.listing.FindOne(c, listingId)
		if err != nil {
			return err
		}

		now := im.now()
		if !l.IsActive() || !l.IsAuction() || now.Before(l.StartTime) || !now.Before(l.EndTime) {
			return xerrors.Errorf("listing %d: %w", listingId, domain.ErrAuctionNotActive)
		}
		if l.Seller.Equals(bidder) {
			return domain.ErrCannotBidOnOwnItem
		}
		if amount.LessThan(l.StartingPrice) {
			return xerrors.Errorf("bid %s below starting price %s: %w", amount, l.StartingPrice, domain.ErrBidTooLow)
		}
		if next := minNextBid(l, cfg.MinIncrementBps); l.HasBid() && amount.LessThan(next) {
			return xerrors.Errorf("bid %s below %s: %w", amount, next, domain.ErrBidIncrementTooLow)
		}

		state, err := im.bidders.FindOne(c, bidder)
		if err != nil {
			return err
		}
		if state != nil && now.Sub(state.LastBidAt) < cfg.BidCooldown {
			return xerrors.Errorf("last bid at %s: %w", state.LastBidAt, domain.ErrBidCooldown)
		}

		if err := im.rail.Collect(c, bidder, l.Medium, amount); err != nil {
			return err
		}
		if err := im.bidders.Upsert(c, &auction.BidderState{Bidder: bidder, LastBidAt: now, LastListing: listingId}); err != nil {
			return err
		}

		if l.HasBid() {
			if err := im.refund(c, l, now); err != nil {
				return err
			}
		}

		patch := listing.Patchable{
			HighestBidder: &bidder,
			HighestBid:    ptr.Decimal(amount),
			BidCount:      ptr.Int64(l.BidCount + 1),
		}
		buyNow := l.HasBuyNow() && !amount.LessThan(l.BuyNowPrice)
		if !buyNow && l.EndTime.Sub(now) < cfg.ExtensionWindow {
			patch.EndTime = ptr.Time(now.Add(cfg.ExtensionWindow))
			patch.Extensions = ptr.Int64(l.Extensions + 1)
			res.Extended = true
		}
		if err := im.listing.UpdateIf(c, listingId, listing.StatusActive, patch); err == domain.ErrNotFound {
			return xerrors.Errorf("listing %d: %w", listingId, domain.ErrAuctionNotActive)
		} else if err != nil {
			return err
		}

		outbox.Emit(c, &activity.ActivityHistory{
			Type:       activity.ActivityHistoryTypePlaceBid,
			ListingId:  listingId,
			Collection: l.Collection,
			TokenId:    l.TokenId,
			Account:    bidder,
			Price:      amount,
			Medium:     l.Medium,
			Time:       now,
		})
		if res.Extended {
			outbox.Emit(c, &activity.ActivityHistory{
				Type:       activity.ActivityHistoryTypeAuctionExtended,
				ListingId:  listingId,
				Collection: l.Collection,
				TokenId:    l.TokenId,
				Account:    bidder,
				Price:      amount,
				Medium:     l.Medium,
				EndTime:    patch.EndTime,
				Time:       now,
			})
		}

		if buyNow {
			if _, err := im.settlement.ExecuteSale(c, settlement.SaleRequest{
				ListingId: listingId,
				Buyer:     bidder,
				Price:     amount,
				Source:    settlement.SourceAuction,
			}); err != nil {
				return err
			}
			res.Settled = true
		}

		res.Listing, err = im.listing.FindOne(c, listingId)
		return err
	})
	if err != nil {
		met.BumpSum("bid.rejected", 1)
		return nil, err
	}

	met.BumpSum("bid.accepted", 1)
	return res, nil
}

func (im *impl) Finalize(c ctx.Ctx, listingId int64) (*listing.Listing, error) {
	if _, err := im.marketplace.Active(c); err != nil {
		return nil, err
	}

	var res *listing.Listing
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		l, err := im.listing.FindOne(c, listingId)
		if err != nil {
			return err
		}
		if !l.IsActive() || !l.IsAuction() {
			return xerrors.Errorf("listing %d is %s %s: %w", listingId, l.Status, l.Kind, domain.ErrInvalidListing)
		}

		now := im.now()
		if now.Before(l.EndTime) {
			return xerrors.Errorf("listing %d ends at %s: %w", listingId, l.EndTime, domain.ErrAuctionNotEnded)
		}

		if l.HasBid() && !l.HighestBid.LessThan(l.ReservePrice) {
			if _, err := im.settlement.ExecuteSale(c, settlement.SaleRequest{
				ListingId: listingId,
				Buyer:     l.HighestBidder,
				Price:     l.HighestBid,
				Source:    settlement.SourceAuction,
			}); err != nil {
				return err
			}
			outbox.Emit(c, &activity.ActivityHistory{
				Type:       activity.ActivityHistoryTypeResultAuction,
				ListingId:  listingId,
				Collection: l.Collection,
				TokenId:    l.TokenId,
				Account:    l.Seller,
				To:         l.HighestBidder,
				Price:      l.HighestBid,
				Medium:     l.Medium,
				Time:       now,
			})
		} else {
			expired := listing.StatusExpired
			if err := im.listing.UpdateIf(c, listingId, listing.StatusActive, listing.Patchable{Status: &expired, ClosedAt: &now}); err == domain.ErrNotFound {
				return xerrors.Errorf("listing %d: %w", listingId, domain.ErrInvalidListing)
			} else if err != nil {
				return err
			}
			if l.HasBid() {
				if err := im.refund(c, l, now); err != nil {
					return err
				}
			}
			if err := im.custody.Withdraw(c, l.Asset(), l.Seller); err != nil {
				c.WithFields(log.Fields{"err": err, "listingId": listingId}).Error("custody.Withdraw failed")
				return err
			}
			outbox.Emit(c, &activity.ActivityHistory{
				Type:       activity.ActivityHistoryTypeAuctionExpired,
				ListingId:  listingId,
				Collection: l.Collection,
				TokenId:    l.TokenId,
				Account:    l.Seller,
				Price:      l.HighestBid,
				Medium:     l.Medium,
				Time:       now,
			})
		}

		res, err = im.listing.FindOne(c, listingId)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{"listingId": listingId, "status": res.Status}).Info("auction finalized")
	return res, nil
}

func (im *impl) FindEnded(c ctx.Ctx, offset, limit int) ([]*listing.Listing, error) {
	return im.listing.FindAll(c,
		listing.WithKind(listing.KindAuction),
		listing.WithStatus(listing.StatusActive),
		listing.WithEndBefore(im.now()),
		listing.WithSort("endTime", domain.SortDirAsc),
		listing.WithPagination(offset, limit),
	)
}
