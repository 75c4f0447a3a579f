package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/custody"
	"github.com/x-xyz/settlement/domain/nftitem"
	nftitemRepository "github.com/x-xyz/settlement/stores/nftitem/repository"
	nftitemUseCase "github.com/x-xyz/settlement/stores/nftitem/usecase"
)

const (
	seller   = domain.Address("0x5e11e7")
	buyer    = domain.Address("0xb0b")
	operator = domain.Address("0xe5c40w")
)

var asset = nftitem.Id{Collection: "0xc011ec7104", TokenId: "1"}

type custodySuite struct {
	suite.Suite
	c       ctx.Ctx
	nftitem nftitem.UseCase
	custody custody.UseCase
}

func TestCustodySuite(t *testing.T) {
	suite.Run(t, new(custodySuite))
}

func (s *custodySuite) SetupTest() {
	s.c = ctx.Background()
	s.nftitem = nftitemUseCase.New(&nftitemUseCase.NftItemUseCaseCfg{Repo: nftitemRepository.NewMemory()})
	s.custody = New(&CustodyUseCaseCfg{NftItem: s.nftitem, Operator: operator})
	s.Require().NoError(s.nftitem.Mint(s.c, asset, seller))
}

func (s *custodySuite) holder() domain.Address {
	h, err := s.custody.Holder(s.c, asset)
	s.Require().NoError(err)
	return h
}

func (s *custodySuite) TestDepositWithoutApproval() {
	s.ErrorIs(s.custody.Deposit(s.c, asset, seller), domain.ErrAssetNotApproved)
	s.Equal(seller, s.holder())
}

func (s *custodySuite) TestDepositByNonHolder() {
	s.ErrorIs(s.custody.Deposit(s.c, asset, buyer), domain.ErrNotAssetHolder)
}

func (s *custodySuite) TestDepositWithdraw() {
	s.Require().NoError(s.nftitem.Approve(s.c, asset, seller, operator, true))
	s.Require().NoError(s.custody.Deposit(s.c, asset, seller))
	s.Equal(operator, s.holder())

	s.Require().NoError(s.custody.Withdraw(s.c, asset, seller))
	s.Equal(seller, s.holder())
}

func (s *custodySuite) TestRelease() {
	s.Require().NoError(s.nftitem.Approve(s.c, asset, seller, operator, true))
	s.Require().NoError(s.custody.Deposit(s.c, asset, seller))
	s.Require().NoError(s.custody.Release(s.c, asset, buyer))
	s.Equal(buyer, s.holder())

	s.ErrorIs(s.custody.Release(s.c, asset, seller), domain.ErrNotAssetHolder)
}
