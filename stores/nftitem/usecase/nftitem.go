package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
)

type NftItemUseCaseCfg struct {
	Repo nftitem.Repo
	Now  func() time.Time
}

type impl struct {
	repo nftitem.Repo
	now  func() time.Time
}

func New(cfg *NftItemUseCaseCfg) nftitem.UseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{repo: cfg.Repo, now: now}
}

func (im *impl) FindOne(c ctx.Ctx, id nftitem.Id) (*nftitem.NftItem, error) {
	return im.repo.FindOne(c, id.ToLower())
}

func (im *impl) FindAll(c ctx.Ctx, owner domain.Address) ([]*nftitem.NftItem, error) {
	return im.repo.FindAll(c, owner.ToLower())
}

func (im *impl) IsHolder(c ctx.Ctx, id nftitem.Id, account domain.Address) (bool, error) {
	item, err := im.repo.FindOne(c, id.ToLower())
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("repo.FindOne failed")
		return false, err
	}
	return item.Owner.Equals(account), nil
}

func (im *impl) IsApproved(c ctx.Ctx, id nftitem.Id, operator domain.Address) (bool, error) {
	item, err := im.repo.FindOne(c, id.ToLower())
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("repo.FindOne failed")
		return false, err
	}
	return item.Owner.Equals(operator) || item.IsApproved(operator), nil
}

func (im *impl) Transfer(c ctx.Ctx, id nftitem.Id, from, to, operator domain.Address) error {
	id = id.ToLower()
	item, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !item.Owner.Equals(from) {
		return xerrors.Errorf("%s not held by %s: %w", id, from, domain.ErrNotAssetHolder)
	}
	if !operator.Equals(from) && !item.IsApproved(operator) {
		return xerrors.Errorf("%s may not move %s: %w", operator, id, domain.ErrAssetNotApproved)
	}
	if err := im.repo.UpdateOwner(c, id, from, to, im.now()); err == domain.ErrNotFound {
		return xerrors.Errorf("%s changed hands: %w", id, domain.ErrNotAssetHolder)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("repo.UpdateOwner failed")
		return err
	}
	c.WithFields(log.Fields{"id": id, "from": from, "to": to}).Debug("asset transferred")
	return nil
}

func (im *impl) Approve(c ctx.Ctx, id nftitem.Id, owner, operator domain.Address, approved bool) error {
	id = id.ToLower()
	item, err := im.repo.FindOne(c, id)
	if err != nil {
		return err
	}
	if !item.Owner.Equals(owner) {
		return domain.ErrNotAssetHolder
	}

	res := []domain.Address{}
	for _, a := range item.Approved {
		if !a.Equals(operator) {
			res = append(res, a)
		}
	}
	if approved {
		res = append(res, operator.ToLower())
	}

	if err := im.repo.SetApproved(c, id, res); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("repo.SetApproved failed")
		return err
	}
	return nil
}

func (im *impl) Mint(c ctx.Ctx, id nftitem.Id, owner domain.Address) error {
	id = id.ToLower()
	item := &nftitem.NftItem{
		Collection: id.Collection,
		TokenId:    id.TokenId,
		Owner:      owner.ToLower(),
		Approved:   []domain.Address{},
		UpdatedAt:  im.now(),
	}
	if err := im.repo.Insert(c, item); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("repo.Insert failed")
		return err
	}
	return nil
}
