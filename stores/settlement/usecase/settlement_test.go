package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/domain/payment"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/domain/royalty/mocks"
	"github.com/x-xyz/settlement/domain/settlement"
	"github.com/x-xyz/settlement/service/memdb"
	custody_usecase "github.com/x-xyz/settlement/stores/custody/usecase"
	listing_repository "github.com/x-xyz/settlement/stores/listing/repository"
	marketplace_repository "github.com/x-xyz/settlement/stores/marketplace/repository"
	marketplace_usecase "github.com/x-xyz/settlement/stores/marketplace/usecase"
	nftitem_repository "github.com/x-xyz/settlement/stores/nftitem/repository"
	nftitem_usecase "github.com/x-xyz/settlement/stores/nftitem/usecase"
	payment_repository "github.com/x-xyz/settlement/stores/payment/repository"
	payment_usecase "github.com/x-xyz/settlement/stores/payment/usecase"
	"github.com/x-xyz/settlement/stores/settlement/repository"
	statistic_repository "github.com/x-xyz/settlement/stores/statistic/repository"
	statistic_usecase "github.com/x-xyz/settlement/stores/statistic/usecase"
)

const (
	escrow = domain.Address("0xe5c40w")
	fee    = domain.Address("0xfee")
	artist = domain.Address("0xa7715t")
	seller = domain.Address("0x5e11e4")
	buyer  = domain.Address("0xb0b")
	medium = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

var asset = nftitem.Id{Collection: "0xc011", TokenId: "9"}

type settlementSuite struct {
	suite.Suite
	c        ctx.Ctx
	now      time.Time
	policy   *mocks.Policy
	listings listing.Repo
	nftitems nftitem.UseCase
	rail     payment.Rail
	uc       settlement.UseCase
}

func TestSettlementSuite(t *testing.T) {
	suite.Run(t, new(settlementSuite))
}

func (s *settlementSuite) SetupTest() {
	s.c = ctx.Background()
	s.now = time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	s.policy = &mocks.Policy{}
	s.listings = listing_repository.NewMemory()
	now := func() time.Time { return s.now }
	tx := memdb.New()

	s.nftitems = nftitem_usecase.New(&nftitem_usecase.NftItemUseCaseCfg{Repo: nftitem_repository.NewMemory(), Now: now})
	s.rail = payment_usecase.New(&payment_usecase.RailCfg{Repo: payment_repository.NewMemory(), Tx: tx, Escrow: escrow, Now: now})
	market := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{Repo: marketplace_repository.NewMemory(), Tx: tx, Now: now})
	_, err := market.EnsureDefault(s.c, marketplace.Default(fee))
	s.Require().NoError(err)

	s.uc = New(&SettlementUseCaseCfg{
		Repo:        repository.NewMemory(),
		Tx:          tx,
		Listing:     s.listings,
		Marketplace: market,
		Royalty:     s.policy,
		Rail:        s.rail,
		Custody:     custody_usecase.New(&custody_usecase.CustodyUseCaseCfg{NftItem: s.nftitems, Operator: escrow}),
		Statistic:   statistic_usecase.New(statistic_repository.NewMemory()),
		Now:         now,
	})

	// the listing flow leaves the asset and the price in escrow
	s.Require().NoError(s.nftitems.Mint(s.c, asset, escrow))
	s.Require().NoError(s.rail.Credit(s.c, escrow, medium, decimal.NewFromInt(1000)))
	s.Require().NoError(s.listings.Insert(s.c, &listing.Listing{
		Id:         1,
		Seller:     seller,
		Collection: asset.Collection,
		TokenId:    asset.TokenId,
		Kind:       listing.KindFixedPrice,
		Medium:     medium,
		Price:      decimal.NewFromInt(1000),
		Status:     listing.StatusActive,
	}))
}

func (s *settlementSuite) balance(owner domain.Address) decimal.Decimal {
	b, err := s.rail.Balance(s.c, owner, medium)
	s.Require().NoError(err)
	return b
}

func (s *settlementSuite) request() settlement.SaleRequest {
	return settlement.SaleRequest{ListingId: 1, Buyer: buyer, Price: decimal.NewFromInt(1000), Source: settlement.SourceBuyNow}
}

func (s *settlementSuite) TestRoyaltyIsCapped() {
	s.policy.On("Quote", mock.Anything, asset.Collection, asset.TokenId, mock.Anything).
		Return(royalty.Quote{Recipient: artist, Amount: decimal.NewFromInt(300)}, nil).Once()

	sale, err := s.uc.ExecuteSale(s.c, s.request())
	s.Require().NoError(err)
	s.policy.AssertExpectations(s.T())

	s.True(decimal.NewFromInt(25).Equal(sale.Split.FeeAmount))
	s.True(decimal.NewFromInt(100).Equal(sale.Split.RoyaltyAmount))
	s.True(decimal.NewFromInt(875).Equal(sale.Split.SellerAmount))
	s.True(decimal.NewFromInt(875).Equal(s.balance(seller)))
	s.True(decimal.NewFromInt(100).Equal(s.balance(artist)))
	s.True(decimal.NewFromInt(25).Equal(s.balance(fee)))
	s.True(s.balance(escrow).IsZero())

	holder, err := s.nftitems.IsHolder(s.c, asset, buyer)
	s.Require().NoError(err)
	s.True(holder)

	got, err := s.uc.FindOne(s.c, sale.Id)
	s.Require().NoError(err)
	s.Equal(sale.Price, got.Price)
}

func (s *settlementSuite) TestSecondSaleFails() {
	s.policy.On("Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(royalty.Quote{}, nil)

	_, err := s.uc.ExecuteSale(s.c, s.request())
	s.Require().NoError(err)

	_, err = s.uc.ExecuteSale(s.c, s.request())
	s.ErrorIs(err, domain.ErrInvalidListing)

	sales, err := s.uc.FindAll(s.c, settlement.WithBuyer(buyer))
	s.Require().NoError(err)
	s.Len(sales, 1)
}

func (s *settlementSuite) TestPolicyFailureRollsBack() {
	errBoom := errors.New("boom")
	s.policy.On("Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(royalty.Quote{}, errBoom)

	_, err := s.uc.ExecuteSale(s.c, s.request())
	s.ErrorIs(err, errBoom)

	l, err := s.listings.FindOne(s.c, 1)
	s.Require().NoError(err)
	s.Equal(listing.StatusActive, l.Status)
	s.True(decimal.NewFromInt(1000).Equal(s.balance(escrow)))
}

func (s *settlementSuite) TestInvalidRequest() {
	req := s.request()
	req.Price = decimal.RequireFromString("10.5")
	_, err := s.uc.ExecuteSale(s.c, req)
	s.ErrorIs(err, domain.ErrInvalidPrice)

	req = s.request()
	req.Buyer = seller
	_, err = s.uc.ExecuteSale(s.c, req)
	s.ErrorIs(err, domain.ErrCannotBuyOwnItem)
}

func (s *settlementSuite) TestFrozenSellerRollsBack() {
	s.policy.On("Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(royalty.Quote{Recipient: artist, Amount: decimal.NewFromInt(50)}, nil)
	s.Require().NoError(s.rail.SetFrozen(s.c, seller, medium, true))

	_, err := s.uc.ExecuteSale(s.c, s.request())
	s.ErrorIs(err, domain.ErrTransferRejected)

	l, err := s.listings.FindOne(s.c, 1)
	s.Require().NoError(err)
	s.Equal(listing.StatusActive, l.Status)
	s.True(decimal.NewFromInt(1000).Equal(s.balance(escrow)))
	s.True(s.balance(artist).IsZero())
	s.True(s.balance(fee).IsZero())

	holder, err := s.nftitems.IsHolder(s.c, asset, escrow)
	s.Require().NoError(err)
	s.True(holder)
}
