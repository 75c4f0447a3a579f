package main

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/app/bootstrap"
	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/nftitem"
)

const (
	operator   = domain.Address("0x0e5c40000000000000000000000000000000e5c4")
	admin      = domain.Address("0xad00000000000000000000000000000000000001")
	fee        = domain.Address("0xfee0000000000000000000000000000000000001")
	seller     = domain.Address("0x5e11000000000000000000000000000000000001")
	alice      = domain.Address("0xa11ce00000000000000000000000000000000001")
	bob        = domain.Address("0xb0b0000000000000000000000000000000000001")
	weth       = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	collection = domain.Address("0xc011000000000000000000000000000000000001")
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type sweeperSuite struct {
	suite.Suite
	c     ctx.Ctx
	clock *clock
	app   *bootstrap.App
	s     *sweeper
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(sweeperSuite))
}

func (s *sweeperSuite) SetupTest() {
	s.c = ctx.Background()
	s.clock = &clock{t: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)}

	app, err := bootstrap.New(s.c, bootstrap.Config{
		Driver:      bootstrap.DriverMemory,
		Operator:    operator,
		Admins:      []domain.Address{admin},
		Marketplace: marketplace.Default(fee),
		Now:         s.clock.Now,
	})
	s.Require().NoError(err)
	s.app = app
	s.s = newSweeper(sweeperCfg{
		Auction:   app.Auction,
		Offer:     app.Offer,
		BatchSize: 10,
		Workers:   2,
		Now:       s.clock.Now,
	})

	s.Require().NoError(app.PayToken.Upsert(s.c, &domain.PayToken{Name: "Wrapped Ether", Symbol: "WETH", TokenDecimals: 18, Address: weth, Enabled: true}))
	s.Require().NoError(app.Payment.Credit(s.c, alice, weth, decimal.NewFromInt(1000)))
	s.Require().NoError(app.Payment.Credit(s.c, bob, weth, decimal.NewFromInt(1000)))
}

func (s *sweeperSuite) mint(tokenId domain.TokenId) nftitem.Id {
	return s.mintTo(tokenId, seller)
}

func (s *sweeperSuite) mintTo(tokenId domain.TokenId, owner domain.Address) nftitem.Id {
	asset := nftitem.Id{Collection: collection, TokenId: tokenId}
	s.Require().NoError(s.app.NftItem.Mint(s.c, asset, owner))
	s.Require().NoError(s.app.NftItem.Approve(s.c, asset, owner, operator, true))
	return asset
}

func (s *sweeperSuite) status(id int64) listing.Status {
	l, err := s.app.Listing.FindOne(s.c, id)
	s.Require().NoError(err)
	return l.Status
}

func (s *sweeperSuite) balance(owner domain.Address) decimal.Decimal {
	b, err := s.app.Payment.Balance(s.c, owner, weth)
	s.Require().NoError(err)
	return b
}

func (s *sweeperSuite) TestNothingToDo() {
	res, err := s.s.sweep(s.c)
	s.Require().NoError(err)
	s.Empty(res.Finalized)
	s.Empty(res.Expired)
	s.Zero(res.Failed)
}

func (s *sweeperSuite) TestFinalizesEndedAuctions() {
	sold, err := s.app.Listing.Create(s.c, seller, s.mint("1"), listing.Terms{
		Kind: listing.KindAuction, Medium: weth, StartingPrice: decimal.NewFromInt(100), Duration: time.Hour,
	})
	s.Require().NoError(err)
	unsold, err := s.app.Listing.Create(s.c, seller, s.mint("2"), listing.Terms{
		Kind: listing.KindAuction, Medium: weth, StartingPrice: decimal.NewFromInt(100), Duration: time.Hour,
	})
	s.Require().NoError(err)
	running, err := s.app.Listing.Create(s.c, seller, s.mint("3"), listing.Terms{
		Kind: listing.KindAuction, Medium: weth, StartingPrice: decimal.NewFromInt(100), Duration: 2 * time.Hour,
	})
	s.Require().NoError(err)

	_, err = s.app.Auction.PlaceBid(s.c, sold.Id, alice, decimal.NewFromInt(200))
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	res, err := s.s.sweep(s.c)
	s.Require().NoError(err)
	s.ElementsMatch([]int64{sold.Id, unsold.Id}, res.Finalized)
	s.Zero(res.Failed)

	got, err := s.app.Listing.FindOne(s.c, sold.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusSold, got.Status)
	got, err = s.app.Listing.FindOne(s.c, unsold.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusExpired, got.Status)
	got, err = s.app.Listing.FindOne(s.c, running.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusActive, got.Status)

	s.True(decimal.NewFromInt(195).Equal(s.balance(seller)))

	res, err = s.s.sweep(s.c)
	s.Require().NoError(err)
	s.Empty(res.Finalized)
}

func (s *sweeperSuite) TestExpiresLapsedOffers() {
	l, err := s.app.Listing.Create(s.c, seller, s.mint("1"), listing.Terms{
		Kind: listing.KindFixedPrice, Medium: weth, Price: decimal.NewFromInt(500),
	})
	s.Require().NoError(err)
	short, err := s.app.Offer.Make(s.c, l.Id, alice, decimal.NewFromInt(100), weth, time.Hour)
	s.Require().NoError(err)
	long, err := s.app.Offer.Make(s.c, l.Id, alice, decimal.NewFromInt(100), weth, 3*time.Hour)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(800).Equal(s.balance(alice)))

	s.clock.Advance(2 * time.Hour)
	res, err := s.s.sweep(s.c)
	s.Require().NoError(err)
	s.Equal([]int64{short.Id}, res.Expired)
	s.True(decimal.NewFromInt(900).Equal(s.balance(alice)))

	o, err := s.app.Offer.FindOne(s.c, long.Id)
	s.Require().NoError(err)
	s.True(o.Active)
}

func (s *sweeperSuite) TestPausedSweepFails() {
	l, err := s.app.Listing.Create(s.c, seller, s.mint("1"), listing.Terms{
		Kind: listing.KindFixedPrice, Medium: weth, Price: decimal.NewFromInt(500),
	})
	s.Require().NoError(err)
	_, err = s.app.Offer.Make(s.c, l.Id, alice, decimal.NewFromInt(100), weth, time.Hour)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.app.Marketplace.Pause(s.c, admin)
	s.Require().NoError(err)

	_, err = s.s.sweep(s.c)
	s.ErrorIs(err, domain.ErrPaused)
	s.True(decimal.NewFromInt(900).Equal(s.balance(alice)))
}

func (s *sweeperSuite) TestFailingAuctionDoesNotBlockLaterOnes() {
	s.s = newSweeper(sweeperCfg{Auction: s.app.Auction, Offer: s.app.Offer, BatchSize: 1, Workers: 1, Now: s.clock.Now})

	stuck, err := s.app.Listing.Create(s.c, seller, s.mint("1"), listing.Terms{
		Kind: listing.KindAuction, Medium: weth, StartingPrice: decimal.NewFromInt(100), Duration: time.Hour,
	})
	s.Require().NoError(err)
	later, err := s.app.Listing.Create(s.c, bob, s.mintTo("2", bob), listing.Terms{
		Kind: listing.KindAuction, Medium: weth, StartingPrice: decimal.NewFromInt(100), Duration: 90 * time.Minute,
	})
	s.Require().NoError(err)
	_, err = s.app.Auction.PlaceBid(s.c, stuck.Id, alice, decimal.NewFromInt(200))
	s.Require().NoError(err)
	s.Require().NoError(s.app.Payment.SetFrozen(s.c, seller, weth, true))

	s.clock.Advance(2 * time.Hour)
	for i := 0; i < 2; i++ {
		res, err := s.s.sweep(s.c)
		s.Require().NoError(err)
		s.Equal(1, res.Failed)
		if i == 0 {
			s.Equal([]int64{later.Id}, res.Finalized)
		} else {
			s.Empty(res.Finalized)
		}
	}
	s.Equal(listing.StatusActive, s.status(stuck.Id))
	s.Equal(listing.StatusExpired, s.status(later.Id))

	s.Require().NoError(s.app.Payment.SetFrozen(s.c, seller, weth, false))
	res, err := s.s.sweep(s.c)
	s.Require().NoError(err)
	s.Equal([]int64{stuck.Id}, res.Finalized)
	s.Zero(res.Failed)
	s.Equal(listing.StatusSold, s.status(stuck.Id))
}

func (s *sweeperSuite) TestFailingRefundDoesNotBlockOtherOffers() {
	s.s = newSweeper(sweeperCfg{Auction: s.app.Auction, Offer: s.app.Offer, BatchSize: 1, Workers: 1, Now: s.clock.Now})

	l, err := s.app.Listing.Create(s.c, seller, s.mint("1"), listing.Terms{
		Kind: listing.KindFixedPrice, Medium: weth, Price: decimal.NewFromInt(500),
	})
	s.Require().NoError(err)
	stuck, err := s.app.Offer.Make(s.c, l.Id, alice, decimal.NewFromInt(100), weth, time.Hour)
	s.Require().NoError(err)
	healthy, err := s.app.Offer.Make(s.c, l.Id, bob, decimal.NewFromInt(100), weth, time.Hour)
	s.Require().NoError(err)
	s.Require().NoError(s.app.Payment.SetFrozen(s.c, alice, weth, true))

	s.clock.Advance(2 * time.Hour)
	res, err := s.s.sweep(s.c)
	s.Require().NoError(err)
	s.Equal([]int64{healthy.Id}, res.Expired)
	s.Equal(1, res.Failed)
	s.True(decimal.NewFromInt(1000).Equal(s.balance(bob)))

	o, err := s.app.Offer.FindOne(s.c, stuck.Id)
	s.Require().NoError(err)
	s.True(o.Active)
	s.True(decimal.NewFromInt(900).Equal(s.balance(alice)))
}
