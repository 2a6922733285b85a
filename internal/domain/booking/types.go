package booking

import (
	"strings"

	"lodge-booking/internal/pkg/errs"
)

var ErrInvalidStatus = errs.New("invalid booking status")

type Status string

const (
	StatusConfirmed Status = "confirmed"
	// StatusProposed is a short-lived hold owned by one booking session.
	StatusProposed Status = "proposed"
	// StatusBlocked is an administrative closure stored with the same shape as a booking.
	StatusBlocked  Status = "blocked"
	StatusCanceled Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusProposed, StatusBlocked, StatusCanceled:
		return true
	default:
		return false
	}
}

// HoldsNights reports whether bookings in this status take nights away from others.
func (s Status) HoldsNights() bool {
	switch s {
	case StatusConfirmed, StatusProposed, StatusBlocked:
		return true
	case StatusCanceled:
		return false
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", errs.Mark(errs.Newf("unknown status %q", s), ErrInvalidStatus)
	}
	return st, nil
}
