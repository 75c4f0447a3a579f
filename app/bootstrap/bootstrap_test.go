package bootstrap

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/domain/listing"
	"github.com/x-xyz/settlement/domain/marketplace"
	"github.com/x-xyz/settlement/domain/nftitem"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/domain/settlement"
)

const (
	operator     = domain.Address("0x0e5c40000000000000000000000000000000e5c4")
	admin        = domain.Address("0xad00000000000000000000000000000000000001")
	feeRecipient = domain.Address("0xfee0000000000000000000000000000000000001")
	artist       = domain.Address("0xa271000000000000000000000000000000000001")
	seller       = domain.Address("0x5e11000000000000000000000000000000000001")
	alice        = domain.Address("0xa11ce00000000000000000000000000000000001")
	bob          = domain.Address("0xb0b0000000000000000000000000000000000001")
	weth         = domain.Address("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	collection   = domain.Address("0xc011000000000000000000000000000000000001")
)

var asset = nftitem.Id{Collection: collection, TokenId: "1"}

// tokens returns v whole tokens of an 18 decimals medium
func tokens(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Shift(18)
}

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

type publisher struct {
	mu  sync.Mutex
	got []*activity.ActivityHistory
}

func (p *publisher) Publish(c ctx.Ctx, activities []*activity.ActivityHistory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, activities...)
}

func (p *publisher) types() []activity.ActivityHistoryType {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := []activity.ActivityHistoryType{}
	for _, a := range p.got {
		res = append(res, a.Type)
	}
	return res
}

type scenarioSuite struct {
	suite.Suite
	c     ctx.Ctx
	clock *clock
	pub   *publisher
	app   *App
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(scenarioSuite))
}

func (s *scenarioSuite) SetupTest() {
	s.c = ctx.Background()
	s.clock = &clock{t: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)}
	s.pub = &publisher{}

	app, err := New(s.c, Config{
		Driver:      DriverMemory,
		Operator:    operator,
		Admins:      []domain.Address{admin},
		Marketplace: marketplace.Default(feeRecipient),
		Publishers:  []activity.Publisher{s.pub},
		Now:         s.clock.Now,
	})
	s.Require().NoError(err)
	s.app = app

	s.Require().NoError(app.PayToken.Upsert(s.c, &domain.PayToken{Name: "Wrapped Ether", Symbol: "WETH", TokenDecimals: 18, Address: weth, Enabled: true}))
	s.Require().NoError(app.NftItem.Mint(s.c, asset, seller))
	s.Require().NoError(app.NftItem.Approve(s.c, asset, seller, operator, true))
	s.Require().NoError(app.Payment.Credit(s.c, alice, weth, tokens(1000)))
	s.Require().NoError(app.Payment.Credit(s.c, bob, weth, tokens(1000)))
}

func (s *scenarioSuite) balance(owner domain.Address) decimal.Decimal {
	b, err := s.app.Payment.Balance(s.c, owner, weth)
	s.Require().NoError(err)
	return b
}

func (s *scenarioSuite) requireBalance(owner domain.Address, want decimal.Decimal) {
	got := s.balance(owner)
	s.Require().Truef(want.Equal(got), "balance of %s: want %s got %s", owner, want, got)
}

func (s *scenarioSuite) requireHolder(want domain.Address) {
	holder, err := s.app.Custody.Holder(s.c, asset)
	s.Require().NoError(err)
	s.Require().Equal(want.ToLower(), holder)
}

func (s *scenarioSuite) listFixed(price decimal.Decimal) *listing.Listing {
	l, err := s.app.Listing.Create(s.c, seller, asset, listing.Terms{Kind: listing.KindFixedPrice, Medium: weth, Price: price})
	s.Require().NoError(err)
	return l
}

func (s *scenarioSuite) listAuction(terms listing.Terms) *listing.Listing {
	terms.Kind = listing.KindAuction
	terms.Medium = weth
	if terms.Duration == 0 {
		terms.Duration = time.Hour
	}
	l, err := s.app.Listing.Create(s.c, seller, asset, terms)
	s.Require().NoError(err)
	return l
}

func (s *scenarioSuite) status(id int64) listing.Status {
	l, err := s.app.Listing.FindOne(s.c, id)
	s.Require().NoError(err)
	return l.Status
}

func (s *scenarioSuite) TestFixedPriceSale() {
	l := s.listFixed(tokens(100))
	s.requireHolder(operator)

	s.Require().NoError(s.app.Listing.Buy(s.c, l.Id, alice))

	s.Equal(listing.StatusSold, s.status(l.Id))
	s.requireHolder(alice)
	s.requireBalance(seller, tokens(97.5))
	s.requireBalance(feeRecipient, tokens(2.5))
	s.requireBalance(alice, tokens(900))
	s.requireBalance(operator, decimal.Zero)

	sales, err := s.app.Settlement.FindAll(s.c, settlement.WithListingId(l.Id))
	s.Require().NoError(err)
	s.Require().Len(sales, 1)
	s.Equal(settlement.SourceBuyNow, sales[0].Source)
	s.Equal(int64(1), sales[0].ConfigVersion)

	stat, err := s.app.Statistic.Get(s.c, collection, weth)
	s.Require().NoError(err)
	s.Equal(int64(1), stat.SaleCount)
	s.True(tokens(100).Equal(stat.Volume))

	s.Equal([]activity.ActivityHistoryType{activity.ActivityHistoryTypeList, activity.ActivityHistoryTypeSale}, s.pub.types())

	s.ErrorIs(s.app.Listing.Buy(s.c, l.Id, bob), domain.ErrListingNotActive)
}

func (s *scenarioSuite) TestCreateRejections() {
	_, err := s.app.Listing.Create(s.c, seller, asset, listing.Terms{Kind: listing.KindFixedPrice, Medium: "0xdead", Price: tokens(1)})
	s.ErrorIs(err, domain.ErrInvalidCurrency)

	_, err = s.app.Listing.Create(s.c, seller, asset, listing.Terms{Kind: listing.KindFixedPrice, Medium: weth, Price: decimal.Zero})
	s.ErrorIs(err, domain.ErrInvalidPrice)

	_, err = s.app.Listing.Create(s.c, seller, asset, listing.Terms{Kind: listing.KindAuction, Medium: weth, StartingPrice: tokens(1)})
	s.ErrorIs(err, domain.ErrInvalidDuration)

	_, err = s.app.Listing.Create(s.c, alice, asset, listing.Terms{Kind: listing.KindFixedPrice, Medium: weth, Price: tokens(1)})
	s.ErrorIs(err, domain.ErrNotAssetHolder)

	s.listFixed(tokens(1))
	_, err = s.app.Listing.Create(s.c, seller, asset, listing.Terms{Kind: listing.KindFixedPrice, Medium: weth, Price: tokens(1)})
	s.ErrorIs(err, domain.ErrAssetAlreadyListed)
}

func (s *scenarioSuite) TestBidIncrement() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10)})

	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(9))
	s.ErrorIs(err, domain.ErrBidTooLow)

	res, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.Require().NoError(err)
	s.False(res.Extended)
	s.requireBalance(alice, tokens(990))

	_, err = s.app.Auction.PlaceBid(s.c, l.Id, bob, tokens(10.4))
	s.ErrorIs(err, domain.ErrBidIncrementTooLow)
	s.requireBalance(bob, tokens(1000))

	res, err = s.app.Auction.PlaceBid(s.c, l.Id, bob, tokens(11))
	s.Require().NoError(err)
	s.Equal(bob.ToLower(), res.Listing.HighestBidder)
	s.True(tokens(11).Equal(res.Listing.HighestBid))
	s.Equal(int64(2), res.Listing.BidCount)

	s.requireBalance(alice, tokens(1000))
	s.requireBalance(bob, tokens(989))
	s.requireBalance(operator, tokens(11))
}

func (s *scenarioSuite) TestBidCooldown() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10)})

	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.Require().NoError(err)
	_, err = s.app.Auction.PlaceBid(s.c, l.Id, bob, tokens(11))
	s.Require().NoError(err)

	s.clock.Advance(30 * time.Second)
	_, err = s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(12))
	s.ErrorIs(err, domain.ErrBidCooldown)

	s.clock.Advance(30 * time.Second)
	_, err = s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(12))
	s.NoError(err)
}

func (s *scenarioSuite) TestBidRejections() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10)})

	_, err := s.app.Auction.PlaceBid(s.c, l.Id, seller, tokens(10))
	s.ErrorIs(err, domain.ErrCannotBidOnOwnItem)

	_, err = s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(2000))
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	fixed, err := s.app.Listing.FindOne(s.c, l.Id)
	s.Require().NoError(err)
	s.False(fixed.HasBid())

	s.clock.Advance(time.Hour)
	_, err = s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.ErrorIs(err, domain.ErrAuctionNotActive)
}

func (s *scenarioSuite) TestAntiSniping() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10)})

	s.clock.Advance(time.Hour - 100*time.Second)
	res, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.Require().NoError(err)
	s.True(res.Extended)
	s.Equal(s.clock.Now().Add(300*time.Second), res.Listing.EndTime)
	s.Equal(int64(1), res.Listing.Extensions)
	s.Contains(s.pub.types(), activity.ActivityHistoryTypeAuctionExtended)

	s.clock.Advance(200 * time.Second)
	_, err = s.app.Auction.Finalize(s.c, l.Id)
	s.ErrorIs(err, domain.ErrAuctionNotEnded)
}

func (s *scenarioSuite) TestOfferExpirySweep() {
	l := s.listFixed(tokens(100))

	o, err := s.app.Offer.Make(s.c, l.Id, alice, tokens(50), weth, time.Hour)
	s.Require().NoError(err)
	s.requireBalance(alice, tokens(950))

	expired, err := s.app.Offer.Expire(s.c, []int64{o.Id})
	s.Require().NoError(err)
	s.Empty(expired)

	s.clock.Advance(time.Hour)
	expired, err = s.app.Offer.Expire(s.c, []int64{o.Id, 999})
	s.Require().NoError(err)
	s.Equal([]int64{o.Id}, expired)
	s.requireBalance(alice, tokens(1000))

	got, err := s.app.Offer.FindOne(s.c, o.Id)
	s.Require().NoError(err)
	s.False(got.Active)

	expired, err = s.app.Offer.Expire(s.c, []int64{o.Id})
	s.Require().NoError(err)
	s.Empty(expired)
	s.requireBalance(alice, tokens(1000))

	s.ErrorIs(s.app.Offer.Accept(s.c, o.Id, seller), domain.ErrOfferInactive)
}

func (s *scenarioSuite) TestReserveNotMet() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10), ReservePrice: tokens(20)})

	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(15))
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	ended, err := s.app.Auction.FindEnded(s.c, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(ended, 1)

	res, err := s.app.Auction.Finalize(s.c, l.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusExpired, res.Status)
	s.requireHolder(seller)
	s.requireBalance(alice, tokens(1000))
	s.requireBalance(seller, decimal.Zero)
	s.requireBalance(operator, decimal.Zero)

	_, err = s.app.Auction.Finalize(s.c, l.Id)
	s.ErrorIs(err, domain.ErrInvalidListing)
	s.requireBalance(alice, tokens(1000))
}

func (s *scenarioSuite) TestAuctionSettles() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10), ReservePrice: tokens(20)})

	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(40))
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	res, err := s.app.Auction.Finalize(s.c, l.Id)
	s.Require().NoError(err)
	s.Equal(listing.StatusSold, res.Status)
	s.Equal(alice.ToLower(), res.Buyer)
	s.requireHolder(alice)
	s.requireBalance(seller, tokens(39))
	s.requireBalance(feeRecipient, tokens(1))
	s.Contains(s.pub.types(), activity.ActivityHistoryTypeResultAuction)
}

func (s *scenarioSuite) TestBuyNowBid() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10), BuyNowPrice: tokens(50)})

	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.Require().NoError(err)

	res, err := s.app.Auction.PlaceBid(s.c, l.Id, bob, tokens(50))
	s.Require().NoError(err)
	s.True(res.Settled)
	s.Equal(listing.StatusSold, res.Listing.Status)
	s.requireHolder(bob)
	s.requireBalance(alice, tokens(1000))
	s.requireBalance(bob, tokens(950))
	s.requireBalance(seller, tokens(48.75))
	s.requireBalance(operator, decimal.Zero)
}

func (s *scenarioSuite) TestCancelAuctionRefundsBid() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10)})
	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.Require().NoError(err)

	s.ErrorIs(s.app.Listing.Cancel(s.c, l.Id, bob), domain.ErrNotAuthorized)
	s.Require().NoError(s.app.Listing.Cancel(s.c, l.Id, seller))

	s.Equal(listing.StatusCancelled, s.status(l.Id))
	s.requireHolder(seller)
	s.requireBalance(alice, tokens(1000))
	s.ErrorIs(s.app.Listing.Cancel(s.c, l.Id, seller), domain.ErrInvalidListing)
}

func (s *scenarioSuite) TestAdminCancel() {
	l := s.listFixed(tokens(1))
	s.Require().NoError(s.app.Listing.Cancel(s.c, l.Id, admin))
	s.requireHolder(seller)
}

func (s *scenarioSuite) TestAcceptOfferWithRoyalty() {
	s.Require().NoError(s.app.Royalty.Set(s.c, admin, royalty.Royalty{Collection: collection, Recipient: artist, Bps: 500}))
	l := s.listFixed(tokens(100))

	_, err := s.app.Offer.Make(s.c, l.Id, seller, tokens(50), weth, time.Hour)
	s.ErrorIs(err, domain.ErrCannotOfferOwnItem)
	_, err = s.app.Offer.Make(s.c, l.Id, alice, tokens(50), weth, time.Minute)
	s.ErrorIs(err, domain.ErrInvalidOfferDuration)

	o, err := s.app.Offer.Make(s.c, l.Id, alice, tokens(50), weth, time.Hour)
	s.Require().NoError(err)
	lost, err := s.app.Offer.Make(s.c, l.Id, bob, tokens(40), weth, time.Hour)
	s.Require().NoError(err)

	s.ErrorIs(s.app.Offer.Accept(s.c, o.Id, bob), domain.ErrNotAuthorized)
	s.Require().NoError(s.app.Offer.Accept(s.c, o.Id, seller))

	s.requireHolder(alice)
	s.requireBalance(seller, tokens(46.25))
	s.requireBalance(feeRecipient, tokens(1.25))
	s.requireBalance(artist, tokens(2.5))
	s.requireBalance(alice, tokens(950))

	s.ErrorIs(s.app.Offer.Accept(s.c, lost.Id, seller), domain.ErrListingNotActive)
	s.ErrorIs(s.app.Offer.Cancel(s.c, lost.Id, alice), domain.ErrNotOfferOwner)
	s.Require().NoError(s.app.Offer.Cancel(s.c, lost.Id, bob))
	s.requireBalance(bob, tokens(1000))
}

func (s *scenarioSuite) TestFailedPayoutRollsBack() {
	l := s.listFixed(tokens(100))
	s.Require().NoError(s.app.Payment.SetFrozen(s.c, seller, weth, true))
	before := len(s.pub.types())

	s.ErrorIs(s.app.Listing.Buy(s.c, l.Id, alice), domain.ErrTransferRejected)

	s.Equal(listing.StatusActive, s.status(l.Id))
	s.requireHolder(operator)
	s.requireBalance(alice, tokens(1000))
	s.requireBalance(operator, decimal.Zero)
	s.Len(s.pub.types(), before)

	_, err := s.app.Statistic.Get(s.c, collection, weth)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *scenarioSuite) TestPause() {
	l := s.listFixed(tokens(100))

	_, err := s.app.Marketplace.Pause(s.c, alice)
	s.ErrorIs(err, domain.ErrNotAuthorized)
	_, err = s.app.Marketplace.Pause(s.c, admin)
	s.Require().NoError(err)

	s.ErrorIs(s.app.Listing.Buy(s.c, l.Id, alice), domain.ErrPaused)
	s.ErrorIs(s.app.Listing.Cancel(s.c, l.Id, seller), domain.ErrPaused)

	_, err = s.app.Marketplace.Unpause(s.c, admin)
	s.Require().NoError(err)
	s.NoError(s.app.Listing.Buy(s.c, l.Id, alice))
}

func (s *scenarioSuite) TestConcurrentFinalize() {
	l := s.listAuction(listing.Terms{StartingPrice: tokens(10)})
	_, err := s.app.Auction.PlaceBid(s.c, l.Id, alice, tokens(10))
	s.Require().NoError(err)
	s.clock.Advance(time.Hour)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errors []error
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.app.Auction.Finalize(s.c, l.Id)
			mu.Lock()
			defer mu.Unlock()
			errors = append(errors, err)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errors {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, domain.ErrInvalidListing)
		}
	}
	s.Equal(1, succeeded)
	s.requireBalance(seller, tokens(9.75))
	s.requireBalance(operator, decimal.Zero)
}
