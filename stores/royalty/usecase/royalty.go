package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/bps"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/royalty"
)

type RoyaltyUseCaseCfg struct {
	Repo       royalty.Repo
	Authorizer domain.Authorizer
	Now        func() time.Time
}

type impl struct {
	repo       royalty.Repo
	authorizer domain.Authorizer
	now        func() time.Time
}

func New(cfg *RoyaltyUseCaseCfg) royalty.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{repo: cfg.Repo, authorizer: cfg.Authorizer, now: now}
}

func (im *impl) Quote(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, price decimal.Decimal) (royalty.Quote, error) {
	r, err := im.repo.FindOne(c, collection)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "collection": collection}).Error("repo.FindOne failed")
		return royalty.Quote{}, err
	}
	if r == nil || r.Bps == 0 || r.Recipient.IsEmpty() {
		return royalty.Quote{Amount: decimal.Zero}, nil
	}
	return royalty.Quote{Recipient: r.Recipient, Amount: bps.Of(price, r.Bps)}, nil
}

func (im *impl) FindOne(c ctx.Ctx, collection domain.Address) (*royalty.Royalty, error) {
	r, err := im.repo.FindOne(c, collection)
	if err != nil {
		return nil, err
	} else if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (im *impl) checkAdmin(c ctx.Ctx, caller domain.Address) error {
	if ok, err := im.authorizer.IsAdmin(c, caller); err != nil {
		c.WithField("err", err).Error("authorizer.IsAdmin failed")
		return err
	} else if !ok {
		return xerrors.Errorf("%s: %w", caller, domain.ErrNotAuthorized)
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, caller domain.Address, r royalty.Royalty) error {
	if err := im.checkAdmin(c, caller); err != nil {
		return err
	}
	if !bps.IsValid(r.Bps) || r.Collection.IsEmpty() || (r.Bps > 0 && r.Recipient.IsEmpty()) {
		return domain.ErrBadParamInput
	}
	r.Collection = r.Collection.ToLower()
	r.Recipient = r.Recipient.ToLower()
	r.UpdatedAt = im.now()
	if err := im.repo.Upsert(c, &r); err != nil {
		c.WithField("err", err).Error("repo.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, caller, collection domain.Address) error {
	if err := im.checkAdmin(c, caller); err != nil {
		return err
	}
	return im.repo.Delete(c, collection)
}
