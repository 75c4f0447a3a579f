package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/stores/nftitem/repository"
)

const (
	alice    = domain.Address("0xa11ce")
	bob      = domain.Address("0xb0b")
	operator = domain.Address("0x0pe4a704")
)

var punk = nftitem.Id{Collection: "0xC011EC7104", TokenId: "7"}

type nftitemSuite struct {
	suite.Suite
	c  ctx.Ctx
	db *memdb.DB
	uc nftitem.UseCase
}

func TestNftItemSuite(t *testing.T) {
	suite.Run(t, new(nftitemSuite))
}

func (s *nftitemSuite) SetupTest() {
	s.c = ctx.Background()
	s.db = memdb.New()
	s.uc = New(&NftItemUseCaseCfg{Repo: repository.NewMemory()})
	s.Require().NoError(s.uc.Mint(s.c, punk, alice))
}

func (s *nftitemSuite) TestMintTwice() {
	s.ErrorIs(s.uc.Mint(s.c, punk, bob), domain.ErrConflict)
}

func (s *nftitemSuite) TestHolderIsCaseInsensitive() {
	ok, err := s.uc.IsHolder(s.c, nftitem.Id{Collection: "0xc011ec7104", TokenId: "7"}, "0xA11CE")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.uc.IsHolder(s.c, nftitem.Id{Collection: "0xc011ec7104", TokenId: "8"}, alice)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *nftitemSuite) TestTransferNeedsApproval() {
	s.ErrorIs(s.uc.Transfer(s.c, punk, alice, bob, operator), domain.ErrAssetNotApproved)

	s.Require().NoError(s.uc.Approve(s.c, punk, alice, operator, true))
	ok, err := s.uc.IsApproved(s.c, punk, operator)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(s.uc.Transfer(s.c, punk, alice, operator, operator))

	item, err := s.uc.FindOne(s.c, punk)
	s.Require().NoError(err)
	s.Equal(operator.ToLower(), item.Owner)
	s.Empty(item.Approved)
}

func (s *nftitemSuite) TestTransferFromWrongHolder() {
	s.ErrorIs(s.uc.Transfer(s.c, punk, bob, alice, bob), domain.ErrNotAssetHolder)
}

func (s *nftitemSuite) TestApproveByNonHolder() {
	s.ErrorIs(s.uc.Approve(s.c, punk, bob, operator, true), domain.ErrNotAssetHolder)
}

func (s *nftitemSuite) TestTransferRollsBack() {
	errAbort := errors.New("abort")
	err := s.db.RunWithTransaction(s.c, func(c ctx.Ctx) error {
		if err := s.uc.Transfer(c, punk, alice, bob, alice); err != nil {
			return err
		}
		return errAbort
	})
	s.ErrorIs(err, errAbort)

	ok, err := s.uc.IsHolder(s.c, punk, alice)
	s.Require().NoError(err)
	s.True(ok)
}
