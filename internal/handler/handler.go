// Package handler contains the HTTP controllers. Handlers stay thin: they
// bind and validate the request, call into the repositories and serialize
// the result into the shared envelope.
package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

var validate = validator.New()

// DateLayout is the wire format for dates (availability windows, booking
// dates).
const DateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// writeRepoError maps repository errors onto the envelope: not-found
// sentinels become 404s, business-rule rejections become 400s with the
// human-readable reason, anything else is logged and returned as a
// generic 500.
func writeRepoError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, repository.ErrServiceNotFound),
		errors.Is(err, repository.ErrPackageNotFound),
		errors.Is(err, repository.ErrPriceNotFound),
		errors.Is(err, repository.ErrCommissionNotFound),
		errors.Is(err, repository.ErrCurrencyNotFound),
		errors.Is(err, repository.ErrReservationNotFound),
		errors.Is(err, repository.ErrNotificationNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, repository.ErrDiscountNotFound),
		errors.Is(err, repository.ErrDiscountNotApplicable),
		errors.Is(err, repository.ErrDiscountLimitReached),
		errors.Is(err, repository.ErrDiscountExpired),
		errors.Is(err, repository.ErrDuplicateComment),
		errors.Is(err, repository.ErrPriceWindowOverlap),
		errors.Is(err, repository.ErrReservationNotPending):
		return response.BadRequest(c, err.Error())
	default:
		log.Error("Unexpected repository error", zap.Error(err))
		return response.Internal(c)
	}
}
