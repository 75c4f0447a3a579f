package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/service/cache/provider"
	"github.com/x-xyz/settlement/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	lyr0 provider.Provider
	lyr1 provider.Provider
	im   provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.lyr0 = primitive.NewPrimitive("layer 0", 1)
	ts.lyr1 = primitive.NewPrimitive("layer 1", 1)
	ts.im = NewCompound([]provider.Provider{ts.lyr0, ts.lyr1})
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetWritesEveryLayer() {
	ts.Require().NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))

	for _, lyr := range []provider.Provider{ts.lyr0, ts.lyr1} {
		val, _, err := lyr.Get(mockCtx, "key")
		ts.Require().NoError(err)
		ts.Equal([]byte("value"), val)
	}
}

func (ts *testsuite) TestGetBackFills() {
	ts.Require().NoError(ts.lyr1.Set(mockCtx, "key", []byte("value"), time.Minute))

	val, _, err := ts.im.Get(mockCtx, "key")
	ts.Require().NoError(err)
	ts.Equal([]byte("value"), val)

	val, _, err = ts.lyr0.Get(mockCtx, "key")
	ts.Require().NoError(err)
	ts.Equal([]byte("value"), val)
}

func (ts *testsuite) TestMiss() {
	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	ts.Require().NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))
	ts.Require().NoError(ts.im.Del(mockCtx, "key"))

	_, _, err := ts.lyr1.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}
