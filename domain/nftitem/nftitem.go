package nftitem

import (
	"fmt"
	"time"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

// Id references one non-fungible asset
type Id struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
}

func (id Id) String() string {
	return fmt.Sprintf("%s/%s", id.Collection, id.TokenId)
}

func (id Id) ToLower() Id {
	return Id{Collection: id.Collection.ToLower(), TokenId: id.TokenId}
}

// NftItem is the ledger entry of who holds an asset and which operators may move it
type NftItem struct {
	Collection domain.Address   `json:"collection" bson:"collection"`
	TokenId    domain.TokenId   `json:"tokenId" bson:"tokenId"`
	Owner      domain.Address   `json:"owner" bson:"owner"`
	Approved   []domain.Address `json:"approved" bson:"approved"`
	UpdatedAt  time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (n *NftItem) ToId() Id {
	return Id{Collection: n.Collection, TokenId: n.TokenId}
}

func (n *NftItem) IsApproved(operator domain.Address) bool {
	for _, a := range n.Approved {
		if a.Equals(operator) {
			return true
		}
	}
	return false
}

type Repo interface {
	FindOne(c ctx.Ctx, id Id) (*NftItem, error)
	FindAll(c ctx.Ctx, owner domain.Address) ([]*NftItem, error)
	Insert(c ctx.Ctx, item *NftItem) error
	// UpdateOwner moves the item to `to` only if `from` still holds it; approvals are cleared.
	// Returns domain.ErrNotFound otherwise.
	UpdateOwner(c ctx.Ctx, id Id, from, to domain.Address, at time.Time) error
	SetApproved(c ctx.Ctx, id Id, approved []domain.Address) error
}

// UseCase is the asset registry consulted by custody
type UseCase interface {
	FindOne(c ctx.Ctx, id Id) (*NftItem, error)
	FindAll(c ctx.Ctx, owner domain.Address) ([]*NftItem, error)
	IsHolder(c ctx.Ctx, id Id, account domain.Address) (bool, error)
	IsApproved(c ctx.Ctx, id Id, operator domain.Address) (bool, error)
	// Transfer moves id from `from` to `to`; operator must be the holder or approved
	Transfer(c ctx.Ctx, id Id, from, to, operator domain.Address) error
	Approve(c ctx.Ctx, id Id, owner, operator domain.Address, approved bool) error
	Mint(c ctx.Ctx, id Id, owner domain.Address) error
}
