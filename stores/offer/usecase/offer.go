package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/offer"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/service/outbox"
)

const sequenceName = "offer"

type OfferUseCaseCfg struct {
	Repo        offer.Repo
	Listing     listing.Repo
	Sequence    domain.SequenceRepo
	Tx          domain.TxRunner
	Marketplace marketplace.UseCase
	PayToken    domain.PayTokenUsecase
	Rail        payment.Rail
	Settlement  settlement.UseCase
	Now         func() time.Time
}

type impl struct {
	repo        offer.Repo
	listing     listing.Repo
	sequence    domain.SequenceRepo
	tx          domain.TxRunner
	marketplace marketplace.UseCase
	paytoken    domain.PayTokenUsecase
	rail        payment.Rail
	settlement  settlement.UseCase
	now         func() time.Time
}

func New(cfg *OfferUseCaseCfg) offer.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		repo:        cfg.Repo,
		listing:     cfg.Listing,
		sequence:    cfg.Sequence,
		tx:          cfg.Tx,
		marketplace: cfg.Marketplace,
		paytoken:    cfg.PayToken,
		rail:        cfg.Rail,
		settlement:  cfg.Settlement,
		now:         now,
	}
}

func signal(t activity.ActivityHistoryType, o *offer.Offer, l *listing.Listing, at time.Time) *activity.ActivityHistory {
	return &activity.ActivityHistory{
		Type:       t,
		ListingId:  o.ListingId,
		OfferId:    o.Id,
		Collection: l.Collection,
		TokenId:    l.TokenId,
		Account:    o.Offerer,
		Price:      o.Amount,
		Medium:     o.Medium,
		Time:       at,
	}
}

func (im *impl) Make(c ctx.Ctx, listingId int64, offerer domain.Address, amount decimal.Decimal, medium domain.Address, duration time.Duration) (*offer.Offer, error) {
	cfg, err := im.marketplace.Active(c)
	if err != nil {
		return nil, err
	}
	if offerer.IsEmpty() {
		return nil, xerrors.Errorf("missing offerer: %w", domain.ErrBadParamInput)
	}
	if amount.Sign() <= 0 || !bps.IsWhole(amount) {
		return nil, xerrors.Errorf("offer %s: %w", amount, domain.ErrInvalidPrice)
	}
	if duration < cfg.MinOfferDuration || duration > cfg.MaxOfferDuration {
		return nil, xerrors.Errorf("duration %s: %w", duration, domain.ErrInvalidOfferDuration)
	}
	if ok, err := im.paytoken.IsAccepted(c, medium); err != nil {
		c.WithFields(log.Fields{"err": err, "medium": medium}).Error("paytoken.IsAccepted failed")
		return nil, err
	} else if !ok {
		return nil, xerrors.Errorf("medium %s: %w", medium, domain.ErrInvalidCurrency)
	}

	var res *offer.Offer
	err = im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		l, err := im.listing.FindOne(c, listingId)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return xerrors.Errorf("listing %d: %w", listingId, domain.ErrListingNotActive)
		}
		if l.Kind != listing.KindFixedPrice {
			return xerrors.Errorf("listing %d is an auction: %w", listingId, domain.ErrInvalidListing)
		}
		if l.Seller.Equals(offerer) {
			return domain.ErrCannotOfferOwnItem
		}
		if !l.Medium.Equals(medium) {
			return xerrors.Errorf("listing %d is paid in %s: %w", listingId, l.Medium, domain.ErrInvalidCurrency)
		}

		if err := im.rail.Collect(c, offerer, l.Medium, amount); err != nil {
			return err
		}

		id, err := im.sequence.Next(c, sequenceName)
		if err != nil {
			c.WithField("err", err).Error("sequence.Next failed")
			return err
		}
		now := im.now()
		o := &offer.Offer{
			Id:         id,
			ListingId:  listingId,
			Offerer:    offerer.ToLower(),
			Amount:     amount,
			Medium:     l.Medium,
			Expiration: now.Add(duration),
			Active:     true,
			CreatedAt:  now,
		}
		if err := im.repo.Insert(c, o); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}

		a := signal(activity.ActivityHistoryTypeCreateOffer, o, l, now)
		a.EndTime = &o.Expiration
		outbox.Emit(c, a)
		res = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) Accept(c ctx.Ctx, offerId int64, caller domain.Address) error {
	if _, err := im.marketplace.Active(c); err != nil {
		return err
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		o, err := im.repo.FindOne(c, offerId)
		if err != nil {
			return err
		}
		if !o.Active {
			return xerrors.Errorf("offer %d: %w", offerId, domain.ErrOfferInactive)
		}
		now := im.now()
		if o.IsExpired(now) {
			return xerrors.Errorf("offer %d expired at %s: %w", offerId, o.Expiration, domain.ErrOfferExpired)
		}

		l, err := im.listing.FindOne(c, o.ListingId)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return xerrors.Errorf("listing %d: %w", l.Id, domain.ErrListingNotActive)
		}
		if !l.Seller.Equals(caller) {
			return xerrors.Errorf("%s is not the seller of listing %d: %w", caller, l.Id, domain.ErrNotAuthorized)
		}

		if err := im.repo.Deactivate(c, offerId, offer.DispositionAccepted, now); err == domain.ErrNotFound {
			return xerrors.Errorf("offer %d: %w", offerId, domain.ErrOfferInactive)
		} else if err != nil {
			return err
		}

		if _, err := im.settlement.ExecuteSale(c, settlement.SaleRequest{
			ListingId: l.Id,
			Buyer:     o.Offerer,
			Price:     o.Amount,
			Source:    settlement.SourceOffer,
			OfferId:   offerId,
		}); err != nil {
			return err
		}

		a := signal(activity.ActivityHistoryTypeAcceptOffer, o, l, now)
		a.To = l.Seller
		outbox.Emit(c, a)
		return nil
	})
}

func (im *impl) Cancel(c ctx.Ctx, offerId int64, caller domain.Address) error {
	if _, err := im.marketplace.Active(c); err != nil {
		return err
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		o, err := im.repo.FindOne(c, offerId)
		if err != nil {
			return err
		}
		if !o.Offerer.Equals(caller) {
			return xerrors.Errorf("%s: %w", caller, domain.ErrNotOfferOwner)
		}
		if !o.Active {
			return xerrors.Errorf("offer %d: %w", offerId, domain.ErrOfferInactive)
		}
		l, err := im.listing.FindOne(c, o.ListingId)
		if err != nil {
			return err
		}

		now := im.now()
		if err := im.repo.Deactivate(c, offerId, offer.DispositionCancelled, now); err == domain.ErrNotFound {
			return xerrors.Errorf("offer %d: %w", offerId, domain.ErrOfferInactive)
		} else if err != nil {
			return err
		}
		if err := im.rail.Refund(c, o.Offerer, o.Medium, o.Amount); err != nil {
			c.WithFields(log.Fields{"err": err, "offerId": offerId}).Warn("rail.Refund failed")
			return err
		}

		outbox.Emit(c, signal(activity.ActivityHistoryTypeCancelOffer, o, l, now))
		return nil
	})
}

// expire disposes a single offer. It reports false for offers that are
// unknown, inactive or not yet expired.
func (im *impl) expire(c ctx.Ctx, offerId int64) (bool, error) {
	done := false
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		done = false
		o, err := im.repo.FindOne(c, offerId)
		if err == domain.ErrNotFound {
			return nil
		} else if err != nil {
			return err
		}
		now := im.now()
		if !o.Active || !o.IsExpired(now) {
			return nil
		}
		l, err := im.listing.FindOne(c, o.ListingId)
		if err != nil {
			return err
		}

		if err := im.repo.Deactivate(c, offerId, offer.DispositionExpired, now); err == domain.ErrNotFound {
			return nil
		} else if err != nil {
			return err
		}
		if err := im.rail.Refund(c, o.Offerer, o.Medium, o.Amount); err != nil {
			return err
		}

		outbox.Emit(c, signal(activity.ActivityHistoryTypeOfferExpired, o, l, now))
		done = true
		return nil
	})
	return done, err
}

func (im *impl) Expire(c ctx.Ctx, offerIds []int64) ([]int64, error) {
	if _, err := im.marketplace.Active(c); err != nil {
		return nil, err
	}

	var firstErr error
	expired := []int64{}
	for _, id := range offerIds {
		done, err := im.expire(c, id)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "offerId": id}).Warn("expire offer failed")
			if firstErr == nil {
				firstErr = xerrors.Errorf("offer %d: %w", id, err)
			}
			continue
		}
		if done {
			expired = append(expired, id)
		}
	}
	return expired, firstErr
}

func (im *impl) FindOne(c ctx.Ctx, id int64) (*offer.Offer, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	return im.repo.FindAll(c, opts...)
}
