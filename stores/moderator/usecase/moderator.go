package usecase

import (
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/moderator"
)

type impl struct {
	moderator moderator.Repo
	admins    map[domain.Address]bool
}

// New returns the moderator usecase. admins are always authorized and cannot be removed.
func New(moderator moderator.Repo, admins []domain.Address) moderator.Usecase {
	im := &impl{moderator: moderator, admins: map[domain.Address]bool{}}
	for _, a := range admins {
		im.admins[a.ToLower()] = true
	}
	return im
}

func (im *impl) FindAll(c ctx.Ctx) ([]*moderator.Moderator, error) {
	return im.moderator.FindAll(c)
}

func (im *impl) IsModerator(c ctx.Ctx, address domain.Address) (bool, error) {
	if res, err := im.moderator.FindOne(c, address); err != nil {
		c.WithField("err", err).Error("moderator.FindOne failed")
		return false, err
	} else {
		return res != nil, nil
	}
}

func (im *impl) IsAdmin(c ctx.Ctx, caller domain.Address) (bool, error) {
	if caller.IsEmpty() {
		return false, nil
	}
	if im.admins[caller.ToLower()] {
		return true, nil
	}
	return im.IsModerator(c, caller)
}

func (im *impl) Add(c ctx.Ctx, address domain.Address, name string) error {
	if address.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if err := im.moderator.Create(c, moderator.Moderator{Address: address.ToLower(), Name: name}); err != nil {
		c.WithField("err", err).Error("moderator.Create failed")
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, address domain.Address) error {
	if err := im.moderator.Delete(c, address); err != nil {
		c.WithField("err", err).Error("moderator.Delete failed")
		return err
	}
	return nil
}
