package custody

import (
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
)

// UseCase moves assets in and out of escrow. Escrowed assets are held by the
// operator account.
type UseCase interface {
	Operator() domain.Address
	// Holder returns the current holder of id
	Holder(c ctx.Ctx, id nftitem.Id) (domain.Address, error)
	// Deposit pulls id from owner into escrow. Fails with ErrNotAssetHolder when
	// owner does not hold it and ErrAssetNotApproved when the operator may not move it.
	Deposit(c ctx.Ctx, id nftitem.Id, owner domain.Address) error
	// Withdraw returns an escrowed id to owner
	Withdraw(c ctx.Ctx, id nftitem.Id, owner domain.Address) error
	// Release delivers an escrowed id to buyer
	Release(c ctx.Ctx, id nftitem.Id, buyer domain.Address) error
}
