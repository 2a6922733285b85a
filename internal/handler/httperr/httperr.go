package httperr

import (
	"net/http"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Kind is a client-facing failure class. Code is stable across releases; Message is for
// people.
type Kind struct {
	Status  int
	Code    string
	Message string
}

var (
	KindConflict         = Kind{http.StatusConflict, "booking_conflict", "Booking conflict"}
	KindDatesUnavailable = Kind{http.StatusUnprocessableEntity, "dates_unavailable", "Dates not available"}
	KindNotFound         = Kind{http.StatusNotFound, "not_found", "Not found"}
	KindInvalidRequest   = Kind{http.StatusBadRequest, "invalid_request", "Invalid request"}
	KindInvalidID        = Kind{http.StatusBadRequest, "invalid_id", "Invalid id"}
	KindInvalidHoldToken = Kind{http.StatusUnauthorized, "invalid_hold_token", "Invalid hold token"}
	KindHoldTokenExpired = Kind{http.StatusUnauthorized, "hold_token_expired", "Hold token expired"}
	KindPricingConfig    = Kind{http.StatusInternalServerError, "pricing_configuration", "Pricing configuration error"}
	KindStorage          = Kind{http.StatusServiceUnavailable, "storage_unavailable", "Storage unavailable"}
	KindInternal         = Kind{http.StatusInternalServerError, "internal", "Internal error"}
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(kind Kind, detail any) Response {
	resp := Response{Status: kind.Status, Detail: detail}
	resp.Error.Code = kind.Code
	resp.Error.Message = kind.Message
	return resp
}

// ConflictDetail names the booking that already holds a night of the requested stay.
type ConflictDetail struct {
	Room      room.ID            `json:"room"`
	BookingID uuid.UUID          `json:"booking_id"`
	Existing  calendar.DateRange `json:"existing"`
}

// RejectionDetail is the first day that kept a span from being selected.
type RejectionDetail struct {
	Day    calendar.Date       `json:"day"`
	Room   room.ID             `json:"room,omitempty"`
	Status availability.Status `json:"status"`
}

// AbortWithError writes kind's response and records err on the context for the logging
// and error middleware.
func AbortWithError(c *gin.Context, kind Kind, err error, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(kind, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
