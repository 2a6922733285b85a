package selection

import (
	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
)

// Surface is the calendar a selection is made on: one room, or the whole property when
// Room is empty.
type Surface struct {
	Room      room.ID
	Month     calendar.Month
	Exclusion availability.Exclusion
}

func (s Surface) IsBulk() bool {
	return s.Room == ""
}

// SameTarget reports whether o selects for the same room and exclusion; a month change
// alone keeps the selection.
func (s Surface) SameTarget(o Surface) bool {
	return s.Room == o.Room && s.Exclusion == o.Exclusion
}
