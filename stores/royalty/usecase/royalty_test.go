package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain"
	mDomain "github.com/x-xyz/settlement/domain/mocks"
	"github.com/x-xyz/settlement/domain/royalty"
	"github.com/x-xyz/settlement/stores/royalty/repository"
)

const (
	admin      = domain.Address("0xad")
	stranger   = domain.Address("0x57")
	creator    = domain.Address("0xc4ea704")
	collection = domain.Address("0xC011")
)

type royaltySuite struct {
	suite.Suite
	c    ctx.Ctx
	auth *mDomain.Authorizer
	uc   royalty.UseCase
}

func TestRoyaltySuite(t *testing.T) {
	suite.Run(t, new(royaltySuite))
}

func (s *royaltySuite) SetupTest() {
	s.c = ctx.Background()
	s.auth = &mDomain.Authorizer{}
	s.auth.On("IsAdmin", mock.Anything, admin).Return(true, nil)
	s.auth.On("IsAdmin", mock.Anything, stranger).Return(false, nil)
	s.uc = New(&RoyaltyUseCaseCfg{Repo: repository.NewMemory(), Authorizer: s.auth})
}

func (s *royaltySuite) TestQuoteWithoutPolicy() {
	q, err := s.uc.Quote(s.c, collection, "1", decimal.NewFromInt(1000))
	s.Require().NoError(err)
	s.True(q.Recipient.IsEmpty())
	s.True(q.Amount.IsZero())
}

func (s *royaltySuite) TestSetAndQuote() {
	s.Require().NoError(s.uc.Set(s.c, admin, royalty.Royalty{Collection: collection, Recipient: creator, Bps: 500}))

	q, err := s.uc.Quote(s.c, "0xc011", "1", decimal.NewFromInt(999))
	s.Require().NoError(err)
	s.Equal(creator.ToLower(), q.Recipient)
	s.True(decimal.NewFromInt(49).Equal(q.Amount))

	s.Require().NoError(s.uc.Remove(s.c, admin, collection))
	_, err = s.uc.FindOne(s.c, collection)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *royaltySuite) TestSetRequiresAdmin() {
	err := s.uc.Set(s.c, stranger, royalty.Royalty{Collection: collection, Recipient: creator, Bps: 500})
	s.ErrorIs(err, domain.ErrNotAuthorized)
}

func (s *royaltySuite) TestSetRejectsInvalidBps() {
	err := s.uc.Set(s.c, admin, royalty.Royalty{Collection: collection, Recipient: creator, Bps: 10001})
	s.ErrorIs(err, domain.ErrBadParamInput)
}
