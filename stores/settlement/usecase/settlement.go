package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/base/ptr"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/custody"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/domain/statistic"
	"github.com/x-xyz/settlement/service/outbox"
)

var met = metrics.New("settlement")

type SettlementUseCaseCfg struct {
	Repo        settlement.Repo
	Tx          domain.TxRunner
	Listing     listing.Repo
	Marketplace marketplace.UseCase
	Royalty     royalty.Policy
	Rail        payment.Rail
	Custody     custody.UseCase
	Statistic   statistic.UseCase
	Now         func() time.Time
}

type impl struct {
	repo        settlement.Repo
	tx          domain.TxRunner
	listing     listing.Repo
	marketplace marketplace.UseCase
	royalty     royalty.Policy
	rail        payment.Rail
	custody     custody.UseCase
	statistic   statistic.UseCase
	now         func() time.Time
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		repo:        cfg.Repo,
		tx:          cfg.Tx,
		listing:     cfg.Listing,
		marketplace: cfg.Marketplace,
		royalty:     cfg.Royalty,
		rail:        cfg.Rail,
		custody:     cfg.Custody,
		statistic:   cfg.Statistic,
		now:         now,
	}
}

// ExecuteSale closes the listing as sold to req.Buyer, pays out the split of
// req.Price from escrow and releases the asset. Every step commits together.
func (im *impl) ExecuteSale(c ctx.Ctx, req settlement.SaleRequest) (*settlement.Sale, error) {
	if req.Price.Sign() <= 0 || !bps.IsWhole(req.Price) {
		return nil, xerrors.Errorf("sale price %s: %w", req.Price, domain.ErrInvalidPrice)
	}
	if req.Buyer.IsEmpty() {
		return nil, xerrors.Errorf("missing buyer: %w", domain.ErrBadParamInput)
	}

	defer met.BumpTime("sale.time", "source", string(req.Source)).End()

	var sale *settlement.Sale
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		cfg, err := im.marketplace.Active(c)
		if err != nil {
			return err
		}

		l, err := im.listing.FindOne(c, req.ListingId)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return xerrors.Errorf("listing %d is %s: %w", l.Id, l.Status, domain.ErrInvalidListing)
		}
		if l.Seller.Equals(req.Buyer) {
			return domain.ErrCannotBuyOwnItem
		}

		now := im.now()
		sold := listing.StatusSold
		buyer := req.Buyer.ToLower()
		if err := im.listing.UpdateIf(c, l.Id, listing.StatusActive, listing.Patchable{
			Status:    &sold,
			Buyer:     &buyer,
			SoldPrice: ptr.Decimal(req.Price),
			ClosedAt:  ptr.Time(now),
		}); err == domain.ErrNotFound {
			return xerrors.Errorf("listing %d: %w", l.Id, domain.ErrInvalidListing)
		} else if err != nil {
			return err
		}

		quote, err := im.royalty.Quote(c, l.Collection, l.TokenId, req.Price)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "collection": l.Collection}).Error("royalty.Quote failed")
			return err
		}
		split := settlement.NewSplit(req.Price, cfg.FeeBps, cfg.FeeRecipient, cfg.MaxRoyaltyBps, quote)

		if err := im.rail.Payout(c, l.Medium, split.Legs(l.Seller)); err != nil {
			c.WithFields(log.Fields{"err": err, "listingId": l.Id}).Warn("rail.Payout failed")
			return err
		}
		if err := im.custody.Release(c, l.Asset(), buyer); err != nil {
			c.WithFields(log.Fields{"err": err, "listingId": l.Id}).Warn("custody.Release failed")
			return err
		}
		if _, err := im.statistic.RecordSale(c, l.Collection, l.Medium, req.Price, now); err != nil {
			return err
		}

		sale = &settlement.Sale{
			Id:            uuid.NewString(),
			ListingId:     l.Id,
			OfferId:       req.OfferId,
			Source:        req.Source,
			Seller:        l.Seller,
			Buyer:         buyer,
			Collection:    l.Collection,
			TokenId:       l.TokenId,
			Medium:        l.Medium,
			Price:         req.Price,
			Split:         split,
			ConfigVersion: cfg.Version,
			Time:          now,
		}
		if err := im.repo.Insert(c, sale); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}

		outbox.Emit(c, &activity.ActivityHistory{
			Type:       activity.ActivityHistoryTypeSale,
			ListingId:  l.Id,
			OfferId:    req.OfferId,
			Collection: l.Collection,
			TokenId:    l.TokenId,
			Account:    l.Seller,
			To:         buyer,
			Price:      req.Price,
			Medium:     l.Medium,
			Time:       now,
		})
		return nil
	})
	if err != nil {
		met.BumpSum("sale.failed", 1, "source", string(req.Source))
		return nil, err
	}

	met.BumpSum("sale.count", 1, "source", string(req.Source))
	return sale, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*settlement.Sale, error) {
	return im.repo.FindOne(c, id)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...settlement.FindAllOptionsFunc) ([]*settlement.Sale, error) {
	return im.repo.FindAll(c, opts...)
}
