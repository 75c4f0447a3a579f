package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("test", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetGet() {
	ts.Require().NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))

	val, ttl, err := ts.im.Get(mockCtx, "key")
	ts.Require().NoError(err)
	ts.Equal([]byte("value"), val)
	ts.True(ttl > 0 && ttl <= time.Minute)
}

func (ts *testsuite) TestExpire() {
	ts.Require().NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Second))
	time.Sleep(2 * time.Second)

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	ts.Require().NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))
	ts.Require().NoError(ts.im.Del(mockCtx, "key"))

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}
