package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/service/cache"
	"github.com/x-xyz/settlement/service/cache/provider/primitive"
	"github.com/x-xyz/settlement/stores/paytoken/repository"
)

const weth = domain.Address("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")

type payTokenSuite struct {
	suite.Suite
	ctx bCtx.Ctx
	uc  domain.PayTokenUsecase
}

func TestPayTokenSuite(t *testing.T) {
	suite.Run(t, new(payTokenSuite))
}

func (s *payTokenSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.uc = NewPayTokenUseCase(&PayTokenUseCaseCfg{
		Repo: repository.NewPayTokenMemoryRepo(),
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   "paytoken",
			Cache: primitive.NewPrimitive("paytoken", 1),
		}),
	})
}

func (s *payTokenSuite) accepted(medium domain.Address) bool {
	ok, err := s.uc.IsAccepted(s.ctx, medium)
	s.Require().NoError(err)
	return ok
}

func (s *payTokenSuite) TestUnknownMedium() {
	s.False(s.accepted(weth))
}

func (s *payTokenSuite) TestEnableDisable() {
	s.False(s.accepted(weth))

	s.Require().NoError(s.uc.Upsert(s.ctx, &domain.PayToken{Name: "Wrapped Ether", Symbol: "WETH", TokenDecimals: 18, Address: weth, Enabled: true}))
	s.True(s.accepted(weth))
	s.True(s.accepted(weth.ToLower()))

	s.Require().NoError(s.uc.SetEnabled(s.ctx, weth, false))
	s.False(s.accepted(weth))

	tokens, err := s.uc.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(tokens, 1)
}

func (s *payTokenSuite) TestSetEnabledUnknown() {
	s.ErrorIs(s.uc.SetEnabled(s.ctx, weth, true), domain.ErrNotFound)
}
