package delivery

import (
	"errors"
	"net/http"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/domain"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{xerrors.Errorf("listing 3: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrPaused, http.StatusServiceUnavailable},
		{xerrors.Errorf("caller 0x1: %w", domain.ErrNotAuthorized), http.StatusForbidden},
		{domain.ErrNotOfferOwner, http.StatusForbidden},
		{xerrors.Errorf("listing 3 is sold: %w", domain.ErrInvalidListing), http.StatusConflict},
		{domain.ErrBidCooldown, http.StatusConflict},
		{domain.ErrBidTooLow, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusBadRequest},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.err), c.err.Error())
	}
}

func TestMakeErrResp(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	assert.NoError(t, MakeErrResp(c, domain.ErrPaused))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"data":"marketplace paused","status":"fail"}`, rec.Body.String())
}

func TestSeconds(t *testing.T) {
	d, err := Seconds(90)
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = Seconds(0)
	assert.NoError(t, err)
	assert.Zero(t, d)

	max := math.MaxInt64 / int64(time.Second)
	d, err = Seconds(max)
	assert.NoError(t, err)
	assert.Equal(t, time.Duration(max)*time.Second, d)

	_, err = Seconds(max + 1)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	_, err = Seconds(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	_, err = Seconds(math.MinInt64)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}
