package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/service/cache/provider"
	"github.com/x-xyz/settlement/service/redis"
	mockRedis "github.com/x-xyz/settlement/service/redis/mocks"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im    provider.Provider
	redis *mockRedis.Service
}

func (ts *testsuite) SetupTest() {
	ts.redis = &mockRedis.Service{}
	ts.im = NewRedis(ts.redis)
}

func (ts *testsuite) TearDownTest() {
	ts.redis.AssertExpectations(ts.T())
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	v := []byte("value")
	ts.redis.On("Set", mockCtx, "key", v, time.Second).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, "key", v, time.Second))
}

func (ts *testsuite) TestSetWithoutTtl() {
	v := []byte("value")
	ts.redis.On("Set", mockCtx, "key", v, redis.Forever).Return(nil).Once()
	ts.NoError(ts.im.Set(mockCtx, "key", v, 0))
}

func (ts *testsuite) TestGet() {
	ts.redis.On("Get", mockCtx, "key").Return([]byte("value"), nil).Once()
	ts.redis.On("TTL", mockCtx, "key").Return(10, nil).Once()

	val, ttl, err := ts.im.Get(mockCtx, "key")
	ts.NoError(err)
	ts.Equal([]byte("value"), val)
	ts.Equal(10*time.Second, ttl)
}

func (ts *testsuite) TestGetMiss() {
	ts.redis.On("Get", mockCtx, "key").Return(nil, redis.ErrNotFound).Once()

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	ts.redis.On("Del", mockCtx, "key").Return(1, nil).Once()
	ts.NoError(ts.im.Del(mockCtx, "key"))
}
