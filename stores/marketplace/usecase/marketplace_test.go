package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/base/ptr"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/domain/marketplace"
	mDomain "github.com/x-xyz/settlement/domain/mocks"
	"github.com/x-xyz/settlement/service/memdb"
	"github.com/x-xyz/settlement/stores/marketplace/repository"
)

const (
	admin    = domain.Address("0xad")
	stranger = domain.Address("0x57")
	treasury = domain.Address("0x7ea5")
)

type marketplaceSuite struct {
	suite.Suite
	c  ctx.Ctx
	uc marketplace.UseCase
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(marketplaceSuite))
}

func (s *marketplaceSuite) SetupTest() {
	s.c = ctx.Background()
	auth := &mDomain.Authorizer{}
	auth.On("IsAdmin", mock.Anything, admin).Return(true, nil)
	auth.On("IsAdmin", mock.Anything, stranger).Return(false, nil)
	s.uc = New(&MarketplaceUseCaseCfg{
		Repo:       repository.NewMemory(),
		Tx:         memdb.New(),
		Authorizer: auth,
	})
	_, err := s.uc.EnsureDefault(s.c, marketplace.Default(treasury))
	s.Require().NoError(err)
}

func (s *marketplaceSuite) TestEnsureDefaultKeepsExisting() {
	_, err := s.uc.Update(s.c, admin, marketplace.Patchable{FeeBps: ptr.Int64(100)})
	s.Require().NoError(err)

	cfg, err := s.uc.EnsureDefault(s.c, marketplace.Default(treasury))
	s.Require().NoError(err)
	s.Equal(int64(2), cfg.Version)
	s.Equal(int64(100), cfg.FeeBps)
}

func (s *marketplaceSuite) TestDefaults() {
	cfg, err := s.uc.Get(s.c)
	s.Require().NoError(err)
	s.Equal(int64(1), cfg.Version)
	s.Equal(int64(250), cfg.FeeBps)
	s.Equal(int64(1000), cfg.MaxRoyaltyBps)
	s.Equal(int64(500), cfg.MinIncrementBps)
	s.Equal(60*time.Second, cfg.BidCooldown)
	s.Equal(300*time.Second, cfg.ExtensionWindow)
}

func (s *marketplaceSuite) TestUpdateAppendsVersion() {
	cfg, err := s.uc.Update(s.c, admin, marketplace.Patchable{MinIncrementBps: ptr.Int64(1000)})
	s.Require().NoError(err)
	s.Equal(int64(2), cfg.Version)
	s.Equal(admin, cfg.UpdatedBy)

	old, err := s.uc.GetVersion(s.c, 1)
	s.Require().NoError(err)
	s.Equal(int64(500), old.MinIncrementBps)
}

func (s *marketplaceSuite) TestUpdateRequiresAdmin() {
	_, err := s.uc.Update(s.c, stranger, marketplace.Patchable{FeeBps: ptr.Int64(100)})
	s.ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *marketplaceSuite) TestFeePlusRoyaltyMustStayBelowWhole() {
	_, err := s.uc.Update(s.c, admin, marketplace.Patchable{FeeBps: ptr.Int64(5000), MaxRoyaltyBps: ptr.Int64(5000)})
	s.ErrorIs(err, domain.ErrInvalidConfig)

	cfg, err := s.uc.Get(s.c)
	s.Require().NoError(err)
	s.Equal(int64(1), cfg.Version)

	_, err = s.uc.Update(s.c, admin, marketplace.Patchable{FeeBps: ptr.Int64(5000), MaxRoyaltyBps: ptr.Int64(4999)})
	s.NoError(err)
}

func (s *marketplaceSuite) TestOfferDurationWindow() {
	_, err := s.uc.Update(s.c, admin, marketplace.Patchable{MinOfferDuration: ptr.Duration(time.Hour), MaxOfferDuration: ptr.Duration(time.Minute)})
	s.ErrorIs(err, domain.ErrInvalidConfig)
}

func (s *marketplaceSuite) TestPause() {
	_, err := s.uc.Pause(s.c, admin)
	s.Require().NoError(err)
	_, err = s.uc.Active(s.c)
	s.ErrorIs(err, domain.ErrPaused)

	_, err = s.uc.Unpause(s.c, admin)
	s.Require().NoError(err)
	cfg, err := s.uc.Active(s.c)
	s.Require().NoError(err)
	s.Equal(int64(3), cfg.Version)
}
