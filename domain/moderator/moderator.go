package moderator

import (
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
)

type Moderator struct {
	Name    string         `json:"name" bson:"name"`
	Address domain.Address `json:"address" bson:"address"`
}

type Repo interface {
	FindAll(c ctx.Ctx) ([]*Moderator, error)
	FindOne(c ctx.Ctx, address domain.Address) (*Moderator, error)
	Create(c ctx.Ctx, value Moderator) error
	Delete(c ctx.Ctx, address domain.Address) error
}

// Usecase manages moderators. It is the domain.Authorizer of the service:
// configured admins and stored moderators both count as admins.
type Usecase interface {
	domain.Authorizer
	FindAll(c ctx.Ctx) ([]*Moderator, error)
	Add(c ctx.Ctx, address domain.Address, name string) error
	Remove(c ctx.Ctx, address domain.Address) error
	IsModerator(c ctx.Ctx, address domain.Address) (bool, error)
}
