package delivery

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/settlement/domain"
	"github.com/x-xyz/settlement/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var (
	forbidden = []error{
		domain.ErrNotAuthorized,
		domain.ErrNotOfferOwner,
		domain.ErrNotAssetHolder,
	}
	conflicts = []error{
		domain.ErrConflict,
		domain.ErrInvalidListing,
		domain.ErrListingNotActive,
		domain.ErrAssetAlreadyListed,
		domain.ErrAuctionNotActive,
		domain.ErrAuctionNotEnded,
		domain.ErrOfferInactive,
		domain.ErrOfferExpired,
		domain.ErrBidCooldown,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// StatusOf maps a usecase error to the http status it is reported with
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPaused):
		return http.StatusServiceUnavailable
	case isAny(err, forbidden):
		return http.StatusForbidden
	case isAny(err, conflicts):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInternalServerError):
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Seconds converts a request field counted in seconds to a duration.
// Negative values and values that do not fit a time.Duration are rejected.
func Seconds(sec int64) (time.Duration, error) {
	if sec < 0 || sec > math.MaxInt64/int64(time.Second) {
		return 0, xerrors.Errorf("%d seconds: %w", sec, domain.ErrInvalidDuration)
	}
	return time.Duration(sec) * time.Second, nil
}

// MakeErrResp reports err with the status StatusOf picks for it
func MakeErrResp(c echo.Context, err error) error {
	return MakeJsonResp(c, StatusOf(err), err)
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) {
			status = http.StatusNotFound
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
