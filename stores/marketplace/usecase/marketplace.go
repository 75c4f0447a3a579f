package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/marketplace"
)

type MarketplaceUseCaseCfg struct {
	Repo       marketplace.Repo
	Tx         domain.TxRunner
	Authorizer domain.Authorizer
	Now        func() time.Time
}

type impl struct {
	repo       marketplace.Repo
	tx         domain.TxRunner
	authorizer domain.Authorizer
	now        func() time.Time
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		repo:       cfg.Repo,
		tx:         cfg.Tx,
		authorizer: cfg.Authorizer,
		now:        now,
	}
}

func (im *impl) Get(c ctx.Ctx) (*marketplace.Config, error) {
	return im.repo.FindLatest(c)
}

func (im *impl) GetVersion(c ctx.Ctx, version int64) (*marketplace.Config, error) {
	return im.repo.FindVersion(c, version)
}

func (im *impl) Active(c ctx.Ctx) (*marketplace.Config, error) {
	cfg, err := im.repo.FindLatest(c)
	if err != nil {
		c.WithField("err", err).Error("repo.FindLatest failed")
		return nil, err
	}
	if cfg.Paused {
		return nil, domain.ErrPaused
	}
	return cfg, nil
}

func (im *impl) EnsureDefault(c ctx.Ctx, defaults marketplace.Config) (*marketplace.Config, error) {
	var res *marketplace.Config
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if cfg, err := im.repo.FindLatest(c); err == nil {
			res = cfg
			return nil
		} else if err != domain.ErrNotFound {
			return err
		}

		if err := defaults.Validate(); err != nil {
			return xerrors.Errorf("defaults: %w", err)
		}
		defaults.Version = 1
		defaults.UpdatedAt = im.now()
		if err := im.repo.Insert(c, &defaults); err != nil {
			return err
		}
		res = &defaults
		return nil
	})
	if err != nil {
		c.WithField("err", err).Error("EnsureDefault failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Update(c ctx.Ctx, caller domain.Address, patch marketplace.Patchable) (*marketplace.Config, error) {
	if ok, err := im.authorizer.IsAdmin(c, caller); err != nil {
		c.WithField("err", err).Error("authorizer.IsAdmin failed")
		return nil, err
	} else if !ok {
		return nil, xerrors.Errorf("%s: %w", caller, domain.ErrNotAuthorized)
	}

	var res *marketplace.Config
	err := im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		latest, err := im.repo.FindLatest(c)
		if err != nil {
			return err
		}

		next := patch.Apply(*latest)
		if err := next.Validate(); err != nil {
			return err
		}
		next.Version = latest.Version + 1
		next.UpdatedBy = caller.ToLower()
		next.UpdatedAt = im.now()
		if err := im.repo.Insert(c, &next); err != nil {
			return err
		}
		res = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.WithFields(log.Fields{"version": res.Version, "caller": caller, "paused": res.Paused}).Info("marketplace config updated")
	return res, nil
}

func (im *impl) Pause(c ctx.Ctx, caller domain.Address) (*marketplace.Config, error) {
	paused := true
	return im.Update(c, caller, marketplace.Patchable{Paused: &paused})
}

func (im *impl) Unpause(c ctx.Ctx, caller domain.Address) (*marketplace.Config, error) {
	paused := false
	return im.Update(c, caller, marketplace.Patchable{Paused: &paused})
}
