package ctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ctxSuite struct {
	suite.Suite
}

func TestCtxSuite(t *testing.T) {
	suite.Run(t, new(ctxSuite))
}

type hiddenKey struct{}

func (s *ctxSuite) TestValues() {
	c := WithValue(Background(), "listingId", int64(3))
	s.Equal(int64(3), c.Value("listingId"))

	c = WithValues(c, map[string]interface{}{"buyer": "0xb0b", "medium": "0xc02a"})
	s.Equal("0xb0b", c.Value("buyer"))
	s.Equal("0xc02a", c.Value("medium"))
	s.Equal(int64(3), c.Value("listingId"))

	c = WithHiddenValue(c, hiddenKey{}, "journal")
	s.Equal("journal", c.Value(hiddenKey{}))
	s.Nil(c.Value("journal"))
}

func (s *ctxSuite) TestFrom() {
	parent, cancel := context.WithCancel(context.Background())
	c := From(parent)
	s.NotNil(c.Logger)
	cancel()
	<-c.Done()
	s.ErrorIs(c.Err(), context.Canceled)
}

func (s *ctxSuite) TestWithCancel() {
	c, cancel := WithCancel(Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		s.Fail("not cancelled")
	}
	s.ErrorIs(c.Err(), context.Canceled)
}

func (s *ctxSuite) TestWithTimeout() {
	c, cancel := WithTimeout(Background(), 10*time.Millisecond)
	defer cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		s.Fail("no deadline")
	}
	s.ErrorIs(c.Err(), context.DeadlineExceeded)
}
