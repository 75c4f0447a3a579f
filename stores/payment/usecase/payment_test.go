package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/stores/payment/repository"
)

const (
	escrow = domain.Address("0xe5c40w")
	alice  = domain.Address("0xa11ce")
	bob    = domain.Address("0xb0b")
	carol  = domain.Address("0xca401")
	weth   = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

type railSuite struct {
	suite.Suite
	c    ctx.Ctx
	rail payment.Rail
}

func TestRailSuite(t *testing.T) {
	suite.Run(t, new(railSuite))
}

func (s *railSuite) SetupTest() {
	s.c = ctx.Background()
	s.rail = New(&RailCfg{
		Repo:   repository.NewMemory(),
		Tx:     memdb.New(),
		Escrow: escrow,
	})
	s.Require().NoError(s.rail.Credit(s.c, alice, weth, decimal.NewFromInt(100)))
}

func (s *railSuite) balance(owner domain.Address) decimal.Decimal {
	b, err := s.rail.Balance(s.c, owner, weth)
	s.Require().NoError(err)
	return b
}

func (s *railSuite) TestCollectAndRefund() {
	s.Require().NoError(s.rail.Collect(s.c, alice, weth, decimal.NewFromInt(40)))
	s.True(decimal.NewFromInt(60).Equal(s.balance(alice)))
	s.True(decimal.NewFromInt(40).Equal(s.balance(escrow)))

	s.Require().NoError(s.rail.Refund(s.c, alice, weth, decimal.NewFromInt(40)))
	s.True(decimal.NewFromInt(100).Equal(s.balance(alice)))
	s.True(decimal.Zero.Equal(s.balance(escrow)))
}

func (s *railSuite) TestCollectInsufficient() {
	s.ErrorIs(s.rail.Collect(s.c, alice, weth, decimal.NewFromInt(101)), domain.ErrInsufficientFunds)
	s.True(decimal.NewFromInt(100).Equal(s.balance(alice)))
	s.True(decimal.Zero.Equal(s.balance(escrow)))
}

func (s *railSuite) TestRejectFractionalAmount() {
	s.ErrorIs(s.rail.Collect(s.c, alice, weth, decimal.RequireFromString("0.5")), domain.ErrInvalidPrice)
}

func (s *railSuite) TestPayoutIsAtomic() {
	s.Require().NoError(s.rail.Collect(s.c, alice, weth, decimal.NewFromInt(100)))
	s.Require().NoError(s.rail.SetFrozen(s.c, carol, weth, true))

	err := s.rail.Payout(s.c, weth, []payment.Leg{
		{To: bob, Amount: decimal.NewFromInt(90)},
		{To: carol, Amount: decimal.NewFromInt(10)},
	})
	s.ErrorIs(err, domain.ErrTransferRejected)
	s.True(decimal.Zero.Equal(s.balance(bob)))
	s.True(decimal.NewFromInt(100).Equal(s.balance(escrow)))

	s.Require().NoError(s.rail.SetFrozen(s.c, carol, weth, false))
	s.Require().NoError(s.rail.Payout(s.c, weth, []payment.Leg{
		{To: bob, Amount: decimal.NewFromInt(90)},
		{To: carol, Amount: decimal.NewFromInt(10)},
		{To: "", Amount: decimal.Zero},
	}))
	s.True(decimal.NewFromInt(90).Equal(s.balance(bob)))
	s.True(decimal.NewFromInt(10).Equal(s.balance(carol)))
	s.True(decimal.Zero.Equal(s.balance(escrow)))
}

func (s *railSuite) TestAccounts() {
	s.Require().NoError(s.rail.Credit(s.c, alice, domain.EmptyAddress, decimal.NewFromInt(1)))
	accounts, err := s.rail.Accounts(s.c, alice)
	s.Require().NoError(err)
	s.Len(accounts, 2)
}
