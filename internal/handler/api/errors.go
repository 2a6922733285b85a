package api

import (
	"context"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/handler/httperr"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"
	"lodge-booking/internal/usecase/selection"

	"github.com/gin-gonic/gin"
)

var badRequestErrors = []error{
	calendar.ErrInvalidDateFormat,
	calendar.ErrInvalidRange,
	calendar.ErrRangeTooLong,
	usecase.ErrInvalidRequest,
	pricing.ErrInvalidInput,
	pricing.ErrUnknownMode,
	booking.ErrInvalidAffiliation,
	booking.ErrInvalidPersonType,
	booking.ErrNegativeGuestCount,
	conflict.ErrEmptyCandidate,
	room.ErrInvalidTier,
}

var notFoundErrors = []error{
	usecase.ErrRoomNotFound,
	usecase.ErrBookingNotFound,
	selection.ErrSessionNotFound,
}

// abortWithUsecaseError maps err onto a status. A conflict is reported before a
// rejection because a conflicting rejection carries both marks.
func abortWithUsecaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, conflict.ErrConflictDetected):
		httperr.AbortWithError(c, httperr.KindConflict, err, conflictDetail(err))
	case errs.Is(err, fsm.ErrValidationRejected):
		httperr.AbortWithError(c, httperr.KindDatesUnavailable, err, rejectionDetail(err))
	case errs.IsAny(err, notFoundErrors...):
		httperr.AbortWithError(c, httperr.KindNotFound, err, err.Error())
	case errs.IsAny(err, badRequestErrors...):
		httperr.AbortWithError(c, httperr.KindInvalidRequest, err, err.Error())
	case errs.Is(err, pricing.ErrConfiguration):
		httperr.AbortWithError(c, httperr.KindPricingConfig, err, err.Error())
	case errs.IsAny(err, usecase.ErrRepositoryFailed, context.DeadlineExceeded):
		httperr.AbortWithError(c, httperr.KindStorage, err, nil)
	default:
		httperr.AbortWithError(c, httperr.KindInternal, err, nil)
	}
}

func conflictDetail(err error) any {
	var ce *conflict.ConflictError
	if !errs.As(err, &ce) {
		return nil
	}
	return httperr.ConflictDetail{Room: ce.Room, BookingID: ce.BookingID, Existing: ce.Existing}
}

func rejectionDetail(err error) any {
	var re *fsm.RejectedError
	if !errs.As(err, &re) {
		return nil
	}
	return httperr.RejectionDetail{Day: re.Day, Room: re.Room, Status: re.Status}
}

func badRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, httperr.KindInvalidRequest, err, err.Error())
}
