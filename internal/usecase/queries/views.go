package queries

import (
	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type DayStatusView struct {
	Date       calendar.Date       `json:"date"`
	Room       room.ID             `json:"room,omitempty"`
	Status     availability.Status `json:"status"`
	Selectable bool                `json:"selectable"`
}

func newDayStatusView(d calendar.Date, id room.ID, s availability.Status) DayStatusView {
	return DayStatusView{Date: d, Room: id, Status: s, Selectable: s.IsSelectable()}
}

// PropertyDayView is the whole-property status with the per-room statuses behind it.
type PropertyDayView struct {
	DayStatusView
	Rooms []DayStatusView `json:"rooms"`
}

type MonthView struct {
	Room  room.ID         `json:"room,omitempty"`
	Month string          `json:"month"`
	Days  []DayStatusView `json:"days"`
}

type PriceBreakdownView struct {
	BookingID uuid.UUID     `json:"booking_id"`
	Stored    int64         `json:"stored_total"`
	Quote     pricing.Quote `json:"quote"`
}

type ConflictView struct {
	Conflict  bool                `json:"conflict"`
	Room      room.ID             `json:"room,omitempty"`
	BookingID *uuid.UUID          `json:"booking_id,omitempty"`
	Status    string              `json:"status,omitempty"`
	Existing  *calendar.DateRange `json:"existing,omitempty"`
}
