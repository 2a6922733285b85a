package response

import (
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/internal/usecase/selection"

	"github.com/google/uuid"
)

type SelectionResponse struct {
	ID        uuid.UUID           `json:"id"`
	Room      room.ID             `json:"room,omitempty"`
	Month     string              `json:"month"`
	State     string              `json:"state"`
	Anchor    *calendar.Date      `json:"anchor,omitempty"`
	Selection *calendar.DateRange `json:"selection,omitempty"`
	// Error is the validation failure that dropped the last span, if any.
	Error string                  `json:"error,omitempty"`
	Days  []queries.DayStatusView `json:"days,omitempty"`
	// RenderError says why Days is missing after a failed month render.
	RenderError string `json:"render_error,omitempty"`
}

func FromSnapshot(s selection.Snapshot) *SelectionResponse {
	out := &SelectionResponse{
		ID:        s.ID,
		Room:      s.Surface.Room,
		Month:     s.Surface.Month.String(),
		State:     s.State.Kind().String(),
		Selection: s.Selection,
	}
	if a, ok := s.State.Anchor(); ok {
		out.Anchor = &a
	}
	if s.LastFailure != nil {
		out.Error = s.LastFailure.Error()
	}
	if s.Month != nil {
		out.Days = s.Month.Days
	}
	if s.RenderFailure != nil {
		out.RenderError = s.RenderFailure.Error()
	}
	return out
}

type HoverResponse struct {
	Preview *calendar.DateRange `json:"preview"`
}
