package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// Account is the balance of one owner in one payment medium. Balances are integer base units.
type Account struct {
	Owner     domain.Address  `json:"owner" bson:"owner"`
	Medium    domain.Address  `json:"medium" bson:"medium"`
	Balance   decimal.Decimal `json:"balance" bson:"balance"`
	Frozen    bool            `json:"frozen" bson:"frozen"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updatedAt"`
}

type AccountId struct {
	Owner  domain.Address `json:"owner" bson:"owner"`
	Medium domain.Address `json:"medium" bson:"medium"`
}

func (a *Account) ToId() AccountId {
	return AccountId{Owner: a.Owner, Medium: a.Medium}
}

// Leg is one payout of a settlement
type Leg struct {
	To     domain.Address  `json:"to" bson:"to"`
	Amount decimal.Decimal `json:"amount" bson:"amount"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id AccountId) (*Account, error)
	FindAll(c ctx.Ctx, owner domain.Address) ([]*Account, error)
	// Add applies delta to the balance, creating the account when missing.
	// A negative delta only applies when the balance covers it, else ErrInsufficientFunds.
	Add(c ctx.Ctx, id AccountId, delta decimal.Decimal, at time.Time) error
	SetFrozen(c ctx.Ctx, id AccountId, frozen bool) error
}

// Rail collects payments into escrow, refunds them and pays out settlements.
// Escrow is the balance of the operator account.
type Rail interface {
	Escrow() domain.Address
	Balance(c ctx.Ctx, owner, medium domain.Address) (decimal.Decimal, error)
	Accounts(c ctx.Ctx, owner domain.Address) ([]*Account, error)
	// Collect moves amount from payer into escrow
	Collect(c ctx.Ctx, payer, medium domain.Address, amount decimal.Decimal) error
	// Refund moves amount from escrow back to payee. A frozen payee fails with ErrTransferRejected.
	Refund(c ctx.Ctx, payee, medium domain.Address, amount decimal.Decimal) error
	// Payout distributes escrowed funds over legs; zero legs are skipped
	Payout(c ctx.Ctx, medium domain.Address, legs []Leg) error
	// Credit mints funds to owner, used to fund accounts
	Credit(c ctx.Ctx, owner, medium domain.Address, amount decimal.Decimal) error
	SetFrozen(c ctx.Ctx, owner, medium domain.Address, frozen bool) error
}
