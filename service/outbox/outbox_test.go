package outbox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/domain/activity"
	"github.com/x-xyz/settlement/service/memdb"
)

type recorder struct {
	published [][]*activity.ActivityHistory
}

func (r *recorder) Publish(c ctx.Ctx, activities []*activity.ActivityHistory) {
	r.published = append(r.published, activities)
}

type outboxSuite struct {
	suite.Suite
	rec    *recorder
	runner *Runner
}

func TestOutboxSuite(t *testing.T) {
	suite.Run(t, new(outboxSuite))
}

func (s *outboxSuite) SetupTest() {
	s.rec = &recorder{}
	s.runner = New(memdb.New(), s.rec)
}

func (s *outboxSuite) TestPublishAfterCommit() {
	err := s.runner.RunWithTransaction(ctx.Background(), func(c ctx.Ctx) error {
		Emit(c, &activity.ActivityHistory{Type: activity.ActivityHistoryTypeList})
		return s.runner.RunWithTransaction(c, func(c ctx.Ctx) error {
			Emit(c, &activity.ActivityHistory{Type: activity.ActivityHistoryTypeSale})
			s.Empty(s.rec.published)
			return nil
		})
	})
	s.Require().NoError(err)
	s.Require().Len(s.rec.published, 1)
	s.Require().Len(s.rec.published[0], 2)
	s.NotEmpty(s.rec.published[0][0].Id)
	s.False(s.rec.published[0][1].Time.IsZero())
}

func (s *outboxSuite) TestNothingPublishedOnRollback() {
	errBoom := errors.New("boom")
	err := s.runner.RunWithTransaction(ctx.Background(), func(c ctx.Ctx) error {
		Emit(c, &activity.ActivityHistory{Type: activity.ActivityHistoryTypeList})
		return errBoom
	})
	s.ErrorIs(err, errBoom)
	s.Empty(s.rec.published)
}

func (s *outboxSuite) TestEmitOutsideTransactionIsDropped() {
	s.NotPanics(func() {
		Emit(ctx.Background(), &activity.ActivityHistory{Type: activity.ActivityHistoryTypeList})
	})
	s.Empty(s.rec.published)
}
