package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/custody"
	"github.com/x-xyz/settlement/domain/nftitem"
)

type CustodyUseCaseCfg struct {
	NftItem  nftitem.UseCase
	Operator domain.Address
}

type impl struct {
	nftitem  nftitem.UseCase
	operator domain.Address
}

func New(cfg *CustodyUseCaseCfg) custody.UseCase {
	return &impl{
		nftitem:  cfg.NftItem,
		operator: cfg.Operator.ToLower(),
	}
}

func (im *impl) Operator() domain.Address {
	return im.operator
}

func (im *impl) Holder(c ctx.Ctx, id nftitem.Id) (domain.Address, error) {
	item, err := im.nftitem.FindOne(c, id)
	if err != nil {
		return "", err
	}
	return item.Owner, nil
}

func (im *impl) Deposit(c ctx.Ctx, id nftitem.Id, owner domain.Address) error {
	if ok, err := im.nftitem.IsHolder(c, id, owner); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("nftitem.IsHolder failed")
		return err
	} else if !ok {
		return xerrors.Errorf("%s does not hold %s: %w", owner, id, domain.ErrNotAssetHolder)
	}

	if ok, err := im.nftitem.IsApproved(c, id, im.operator); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("nftitem.IsApproved failed")
		return err
	} else if !ok {
		return xerrors.Errorf("custody of %s: %w", id, domain.ErrAssetNotApproved)
	}

	if err := im.nftitem.Transfer(c, id, owner, im.operator, im.operator); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("nftitem.Transfer failed")
		return err
	}
	return nil
}

func (im *impl) Withdraw(c ctx.Ctx, id nftitem.Id, owner domain.Address) error {
	if err := im.nftitem.Transfer(c, id, im.operator, owner, im.operator); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id, "owner": owner}).Error("nftitem.Transfer failed")
		return err
	}
	return nil
}

func (im *impl) Release(c ctx.Ctx, id nftitem.Id, buyer domain.Address) error {
	if err := im.nftitem.Transfer(c, id, im.operator, buyer, im.operator); err != nil {
		c.WithFields(log.Fields{"err": err, "id": id, "buyer": buyer}).Error("nftitem.Transfer failed")
		return err
	}
	return nil
}
