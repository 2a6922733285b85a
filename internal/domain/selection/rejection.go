package selection

import (
	"fmt"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
)

// RejectedError names the first day that made a span unselectable. Cause is set when a
// conflicting booking was found on the fresh read.
type RejectedError struct {
	Day    calendar.Date
	Room   room.ID
	Status availability.Status
	Cause  error
}

func (e *RejectedError) Error() string {
	if e.Cause != nil {
		return "dates not available: " + e.Cause.Error()
	}
	if e.Room == "" {
		return fmt.Sprintf("%s is %s", e.Day, e.Status)
	}
	return fmt.Sprintf("%s is %s in room %s", e.Day, e.Status, e.Room)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrValidationRejected
}

func (e *RejectedError) Unwrap() error {
	return e.Cause
}
