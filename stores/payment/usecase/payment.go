package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/log"
	"github.com/x-xyz/settlement/base/metrics"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/payment"
)

var met = metrics.New("payment")

type RailCfg struct {
	Repo   payment.Repo
	Tx     domain.TxRunner
	Escrow domain.Address
	Now    func() time.Time
}

type impl struct {
	repo   payment.Repo
	tx     domain.TxRunner
	escrow domain.Address
	now    func() time.Time
}

func New(cfg *RailCfg) payment.Rail {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		repo:   cfg.Repo,
		tx:     cfg.Tx,
		escrow: cfg.Escrow.ToLower(),
		now:    now,
	}
}

func (im *impl) Escrow() domain.Address {
	return im.escrow
}

func (im *impl) Balance(c ctx.Ctx, owner, medium domain.Address) (decimal.Decimal, error) {
	a, err := im.repo.FindOne(c, payment.AccountId{Owner: owner, Medium: medium})
	if err == domain.ErrNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		c.WithField("err", err).Error("repo.FindOne failed")
		return decimal.Zero, err
	}
	return a.Balance, nil
}

func (im *impl) Accounts(c ctx.Ctx, owner domain.Address) ([]*payment.Account, error) {
	return im.repo.FindAll(c, owner)
}

func (im *impl) debit(c ctx.Ctx, owner, medium domain.Address, amount decimal.Decimal) error {
	if err := im.repo.Add(c, payment.AccountId{Owner: owner, Medium: medium}, amount.Neg(), im.now()); err == domain.ErrInsufficientFunds {
		return xerrors.Errorf("%s cannot pay %s: %w", owner, amount, domain.ErrInsufficientFunds)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("repo.Add failed")
		return err
	}
	return nil
}

func (im *impl) credit(c ctx.Ctx, owner, medium domain.Address, amount decimal.Decimal) error {
	id := payment.AccountId{Owner: owner, Medium: medium}
	if a, err := im.repo.FindOne(c, id); err != nil && err != domain.ErrNotFound {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("repo.FindOne failed")
		return err
	} else if err == nil && a.Frozen {
		met.BumpSum("transfer.rejected", 1)
		return xerrors.Errorf("%s: %w", owner, domain.ErrTransferRejected)
	}
	if err := im.repo.Add(c, id, amount, im.now()); err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("repo.Add failed")
		return err
	}
	return nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.Sign() < 0 || !amount.Equal(amount.Truncate(0)) {
		return xerrors.Errorf("amount %s: %w", amount, domain.ErrInvalidPrice)
	}
	return nil
}

// move transfers amount between two accounts as one step
func (im *impl) move(c ctx.Ctx, from, to, medium domain.Address, amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.debit(c, from, medium, amount); err != nil {
			return err
		}
		return im.credit(c, to, medium, amount)
	})
}

func (im *impl) Collect(c ctx.Ctx, payer, medium domain.Address, amount decimal.Decimal) error {
	if err := im.move(c, payer, im.escrow, medium, amount); err != nil {
		return err
	}
	met.BumpSum("collect", 1)
	return nil
}

func (im *impl) Refund(c ctx.Ctx, payee, medium domain.Address, amount decimal.Decimal) error {
	if err := im.move(c, im.escrow, payee, medium, amount); err != nil {
		return err
	}
	met.BumpSum("refund", 1)
	return nil
}

func (im *impl) Payout(c ctx.Ctx, medium domain.Address, legs []payment.Leg) error {
	for _, leg := range legs {
		if err := checkAmount(leg.Amount); err != nil {
			return err
		}
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		for _, leg := range legs {
			if leg.Amount.IsZero() {
				continue
			}
			if leg.To.IsEmpty() {
				return xerrors.Errorf("payout of %s without recipient: %w", leg.Amount, domain.ErrBadParamInput)
			}
			if err := im.debit(c, im.escrow, medium, leg.Amount); err != nil {
				return err
			}
			if err := im.credit(c, leg.To, medium, leg.Amount); err != nil {
				return err
			}
		}
		met.BumpSum("payout", 1)
		return nil
	})
}

func (im *impl) Credit(c ctx.Ctx, owner, medium domain.Address, amount decimal.Decimal) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		return im.credit(c, owner, medium, amount)
	})
}

func (im *impl) SetFrozen(c ctx.Ctx, owner, medium domain.Address, frozen bool) error {
	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		return im.repo.SetFrozen(c, payment.AccountId{Owner: owner, Medium: medium}, frozen)
	})
}
