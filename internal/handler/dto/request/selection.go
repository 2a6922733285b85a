package request

import (
	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/pkg/ptr"

	"github.com/google/uuid"
)

// OpenSelectionRequest opens a selection on one room's calendar, or on the whole
// property when room is omitted.
type OpenSelectionRequest struct {
	Room             string     `json:"room"`
	Month            string     `json:"month" binding:"required"`
	ExcludeBookingID *uuid.UUID `json:"exclude_booking_id"`
}

func (r OpenSelectionRequest) ToSurface() (fsm.Surface, error) {
	m, err := calendar.ParseMonth(r.Month)
	if err != nil {
		return fsm.Surface{}, err
	}
	return fsm.Surface{
		Room:      room.ID(r.Room),
		Month:     m,
		Exclusion: availability.Exclusion{BookingID: ptr.Deref(r.ExcludeBookingID, uuid.Nil)},
	}, nil
}

type ClickRequest struct {
	Date string `json:"date" binding:"required"`
}

type NavigateRequest struct {
	Month string `json:"month" binding:"required"`
}
