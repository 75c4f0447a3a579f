package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/custody"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/service/outbox"
)

const sequenceName = "listing"

type ListingUseCaseCfg struct {
	Repo        listing.Repo
	Sequence    domain.SequenceRepo
	Tx          domain.TxRunner
	Marketplace marketplace.UseCase
	PayToken    domain.PayTokenUsecase
	Custody     custody.UseCase
	Rail        payment.Rail
	Settlement  settlement.UseCase
	Authorizer  domain.Authorizer
	Now         func() time.Time
}

type impl struct {
	repo        listing.Repo
	sequence    domain.SequenceRepo
	tx          domain.TxRunner
	marketplace marketplace.UseCase
	paytoken    domain.PayTokenUsecase
	custody     custody.UseCase
	rail        payment.Rail
	settlement  settlement.UseCase
	authorizer  domain.Authorizer
	now         func() time.Time
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		repo:        cfg.Repo,
		sequence:    cfg.Sequence,
		tx:          cfg.Tx,
		marketplace: cfg.Marketplace,
		paytoken:    cfg.PayToken,
		custody:     cfg.Custody,
		rail:        cfg.Rail,
		settlement:  cfg.Settlement,
		authorizer:  cfg.Authorizer,
		now:         now,
	}
}

func invalid(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, domain.ErrInvalidListing)...)
}

func validateTerms(t listing.Terms) error {
	switch t.Kind {
	case listing.KindFixedPrice:
		if t.Price.Sign() <= 0 || !bps.IsWhole(t.Price) {
			return xerrors.Errorf("price %s: %w", t.Price, domain.ErrInvalidPrice)
		}
	case listing.KindAuction:
		if t.StartingPrice.Sign() <= 0 || !bps.IsWhole(t.StartingPrice) {
			return xerrors.Errorf("starting price %s: %w", t.StartingPrice, domain.ErrInvalidPrice)
		}
		if !bps.IsWhole(t.ReservePrice) {
			return xerrors.Errorf("reserve price %s: %w", t.ReservePrice, domain.ErrInvalidPrice)
		}
		if !bps.IsWhole(t.BuyNowPrice) {
			return xerrors.Errorf("buy now price %s: %w", t.BuyNowPrice, domain.ErrInvalidPrice)
		}
		if t.BuyNowPrice.Sign() > 0 && (t.BuyNowPrice.LessThan(t.StartingPrice) || t.BuyNowPrice.LessThan(t.ReservePrice)) {
			return xerrors.Errorf("buy now price %s below starting or reserve price: %w", t.BuyNowPrice, domain.ErrInvalidPrice)
		}
		if t.Duration <= 0 {
			return xerrors.Errorf("duration %s: %w", t.Duration, domain.ErrInvalidDuration)
		}
	default:
		return invalid("unknown kind %q", t.Kind)
	}
	return nil
}

func (im *impl) Create(c ctx.Ctx, seller domain.Address, asset nftitem.Id, terms listing.Terms) (*listing.Listing, error) {
	cfg, err := im.marketplace.Active(c)
	if err != nil {
		return nil, err
	}
	if seller.IsEmpty() || asset.Collection.IsEmpty() || asset.TokenId == "" {
		return nil, xerrors.Errorf("seller and asset are required: %w", domain.ErrBadParamInput)
	}
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	now := im.now()
	start := now
	if terms.StartTime != nil {
		if terms.StartTime.Before(now) {
			return nil, invalid("start time %s is in the past", terms.StartTime)
		}
		start = *terms.StartTime
	}

	if ok, err := im.paytoken.IsAccepted(c, terms.Medium); err != nil {
		c.WithFields(log.Fields{"err": err, "medium": terms.Medium}).Error("paytoken.IsAccepted failed")
		return nil, err
	} else if !ok {
		return nil, xerrors.Errorf("medium %s: %w", terms.Medium, domain.ErrInvalidCurrency)
	}

	l := &listing.Listing{
		Seller:        seller.ToLower(),
		Collection:    asset.Collection.ToLower(),
		TokenId:       asset.TokenId,
		Kind:          terms.Kind,
		Medium:        terms.Medium.ToLower(),
		Price:         terms.Price,
		StartingPrice: terms.StartingPrice,
		ReservePrice:  terms.ReservePrice,
		BuyNowPrice:   terms.BuyNowPrice,
		StartTime:     start,
		Status:        listing.StatusActive,
		ConfigVersion: cfg.Version,
		CreatedAt:     now,
	}
	if terms.Kind == listing.KindAuction {
		l.Price = l.StartingPrice
		l.EndTime = start.Add(terms.Duration)
	}

	err = im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		existing, err := im.repo.FindAll(c, listing.WithAsset(asset), listing.WithStatus(listing.StatusActive), listing.WithPagination(0, 1))
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return xerrors.Errorf("%s in listing %d: %w", asset, existing[0].Id, domain.ErrAssetAlreadyListed)
		}

		if err := im.custody.Deposit(c, asset, seller); err != nil {
			return err
		}

		id, err := im.sequence.Next(c, sequenceName)
		if err != nil {
			c.WithField("err", err).Error("sequence.Next failed")
			return err
		}
		l.Id = id
		if err := im.repo.Insert(c, l); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}

		var endTime *time.Time
		if l.IsAuction() {
			endTime = &l.EndTime
		}
		outbox.Emit(c, &activity.ActivityHistory{
			Type:       activity.ActivityHistoryTypeList,
			ListingId:  l.Id,
			Collection: l.Collection,
			TokenId:    l.TokenId,
			Account:    l.Seller,
			Price:      l.Price,
			Medium:     l.Medium,
			EndTime:    endTime,
			Time:       now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{"listingId": l.Id, "kind": l.Kind, "asset": asset}).Info("listing created")
	return l, nil
}

func (im *impl) authorize(c ctx.Ctx, l *listing.Listing, caller domain.Address) error {
	if l.Seller.Equals(caller) {
		return nil
	}
	ok, err := im.authorizer.IsAdmin(c, caller)
	if err != nil {
		c.WithField("err", err).Error("authorizer.IsAdmin failed")
		return err
	} else if !ok {
		return xerrors.Errorf("%s may not cancel listing %d: %w", caller, l.Id, domain.ErrNotAuthorized)
	}
	return nil
}

func (im *impl) Cancel(c ctx.Ctx, id int64, caller domain.Address) error {
	if _, err := im.marketplace.Active(c); err != nil {
		return err
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		l, err := im.repo.FindOne(c, id)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return invalid("listing %d is %s", id, l.Status)
		}
		if err := im.authorize(c, l, caller); err != nil {
			return err
		}

		now := im.now()
		cancelled := listing.StatusCancelled
		if err := im.repo.UpdateIf(c, id, listing.StatusActive, listing.Patchable{Status: &cancelled, ClosedAt: &now}); err == domain.ErrNotFound {
			return invalid("listing %d", id)
		} else if err != nil {
			return err
		}

		if l.IsAuction() && l.HasBid() {
			if err := im.rail.Refund(c, l.HighestBidder, l.Medium, l.HighestBid); err != nil {
				c.WithFields(log.Fields{"err": err, "listingId": id, "bidder": l.HighestBidder}).Warn("rail.Refund failed")
				return err
			}
			outbox.Emit(c, &activity.ActivityHistory{
				Type:       activity.ActivityHistoryTypeBidRefunded,
				ListingId:  id,
				Collection: l.Collection,
				TokenId:    l.TokenId,
				Account:    l.HighestBidder,
				Price:      l.HighestBid,
				Medium:     l.Medium,
				Time:       now,
			})
		}

		if err := im.custody.Withdraw(c, l.Asset(), l.Seller); err != nil {
			c.WithFields(log.Fields{"err": err, "listingId": id}).Error("custody.Withdraw failed")
			return err
		}

		outbox.Emit(c, &activity.ActivityHistory{
			Type:       activity.ActivityHistoryTypeCancelListing,
			ListingId:  id,
			Collection: l.Collection,
			TokenId:    l.TokenId,
			Account:    caller.ToLower(),
			Medium:     l.Medium,
			Time:       now,
		})
		return nil
	})
}

func (im *impl) Buy(c ctx.Ctx, id int64, buyer domain.Address) error {
	if _, err := im.marketplace.Active(c); err != nil {
		return err
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		l, err := im.repo.FindOne(c, id)
		if err != nil {
			return err
		}
		if !l.IsActive() || im.now().Before(l.StartTime) {
			return xerrors.Errorf("listing %d: %w", id, domain.ErrListingNotActive)
		}
		if l.Kind != listing.KindFixedPrice {
			return invalid("listing %d is an auction", id)
		}
		if l.Seller.Equals(buyer) {
			return domain.ErrCannotBuyOwnItem
		}

		if err := im.rail.Collect(c, buyer, l.Medium, l.Price); err != nil {
			return err
		}
		_, err = im.settlement.ExecuteSale(c, settlement.SaleRequest{
			ListingId: id,
			Buyer:     buyer,
			Price:     l.Price,
			Source:    settlement.SourceBuyNow,
		})
		return err
	})
}

func (im *impl) FindOne(c ctx.Ctx, id int64) (*listing.Listing, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	return im.repo.FindAll(c, opts...)
}
