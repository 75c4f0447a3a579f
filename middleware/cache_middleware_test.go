package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/settlement/base/ctx"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	rc *ResponseCache
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.rc = NewResponseCache(nil, 1)
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(url string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, url, nil), rec)
	c.Set("ctx", ctx.Background())
	s.Require().NoError(s.rc.CacheHttp(30 * time.Second)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "Hello, World")
	}

	rec := s.serve("/stats?b=2&a=1", h)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())

	// same url with reordered params hits the cache
	rec = s.serve("/stats?a=1&b=2", h)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())
	s.Equal(1, calls)

	s.serve("/stats?a=2", h)
	s.Equal(2, calls)
}

func (s *cacheMiddlewareSuite) TestErrorsAreNotCached() {
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusNotFound, "missing")
	}

	s.Equal(http.StatusNotFound, s.serve("/missing", h).Code)
	s.Equal(http.StatusNotFound, s.serve("/missing", h).Code)
	s.Equal(2, calls)
}
