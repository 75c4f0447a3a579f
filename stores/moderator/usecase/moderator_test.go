package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/stores/moderator/repository"
)

func TestIsAdmin(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	uc := New(repository.NewMemory(), []domain.Address{"0xAD"})

	ok, err := uc.IsAdmin(c, "0xad")
	req.NoError(err)
	req.True(ok)

	ok, err = uc.IsAdmin(c, "0xm0d")
	req.NoError(err)
	req.False(ok)

	req.NoError(uc.Add(c, "0xM0D", "mod"))
	ok, err = uc.IsAdmin(c, "0xm0d")
	req.NoError(err)
	req.True(ok)

	req.ErrorIs(uc.Add(c, "0xm0d", "again"), domain.ErrConflict)

	mods, err := uc.FindAll(c)
	req.NoError(err)
	req.Len(mods, 1)

	req.NoError(uc.Remove(c, "0xm0d"))
	ok, err = uc.IsModerator(c, "0xm0d")
	req.NoError(err)
	req.False(ok)

	ok, err = uc.IsAdmin(c, "")
	req.NoError(err)
	req.False(ok)
}
