package usecase

import (
	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/service/cache"
)

type PayTokenUseCaseCfg struct {
	Repo domain.PayTokenRepo
	// Cache holds accepted lookups; optional
	Cache cache.Service
}

type payTokenUseCase struct {
	repo  domain.PayTokenRepo
	cache cache.Service
}

func NewPayTokenUseCase(cfg *PayTokenUseCaseCfg) domain.PayTokenUsecase {
	return &payTokenUseCase{repo: cfg.Repo, cache: cfg.Cache}
}

func (u *payTokenUseCase) FindAll(ctx bCtx.Ctx) ([]*domain.PayToken, error) {
	return u.repo.FindAll(ctx)
}

func (u *payTokenUseCase) isAccepted(ctx bCtx.Ctx, medium domain.Address) (bool, error) {
	t, err := u.repo.FindOne(ctx, medium)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "medium": medium}).Error("repo.FindOne failed")
		return false, err
	}
	return t != nil && t.Enabled, nil
}

func (u *payTokenUseCase) IsAccepted(ctx bCtx.Ctx, medium domain.Address) (bool, error) {
	medium = medium.ToLower()
	if u.cache == nil {
		return u.isAccepted(ctx, medium)
	}

	accepted := false
	if err := u.cache.GetByFunc(ctx, string(medium), &accepted, func() (interface{}, error) {
		ok, err := u.isAccepted(ctx, medium)
		return &ok, err
	}); err != nil {
		return false, err
	}
	return accepted, nil
}

func (u *payTokenUseCase) invalidate(ctx bCtx.Ctx, medium domain.Address) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Del(ctx, string(medium.ToLower())); err != nil {
		ctx.WithFields(log.Fields{"err": err, "medium": medium}).Warn("cache.Del failed")
	}
}

func (u *payTokenUseCase) Upsert(ctx bCtx.Ctx, payToken *domain.PayToken) error {
	if payToken.Address.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	payToken.Address = payToken.Address.ToLower()
	if err := u.repo.Upsert(ctx, payToken); err != nil {
		ctx.WithField("err", err).Error("repo.Upsert failed")
		return err
	}
	u.invalidate(ctx, payToken.Address)
	return nil
}

func (u *payTokenUseCase) SetEnabled(ctx bCtx.Ctx, medium domain.Address, enabled bool) error {
	t, err := u.repo.FindOne(ctx, medium)
	if err != nil {
		return err
	} else if t == nil {
		return domain.ErrNotFound
	}
	t.Enabled = enabled
	return u.Upsert(ctx, t)
}
