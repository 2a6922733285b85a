package request

import (
	"strings"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/pkg/ptr"
	"lodge-booking/internal/usecase/commands"
	"lodge-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RangeRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

func (r RangeRequest) ToDomain() (calendar.DateRange, error) {
	start, err := calendar.ParseDate(r.CheckIn)
	if err != nil {
		return calendar.DateRange{}, err
	}
	end, err := calendar.ParseDate(r.CheckOut)
	if err != nil {
		return calendar.DateRange{}, err
	}
	return calendar.NewDateRange(start, end)
}

type GuestRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type" binding:"required,oneof=adult child toddler"`
	Affiliation string `json:"affiliation" binding:"required,oneof=internal external"`
}

type GuestsRequest struct {
	Adults      int            `json:"adults" binding:"min=0"`
	Children    int            `json:"children" binding:"min=0"`
	Toddlers    int            `json:"toddlers" binding:"min=0"`
	Affiliation string         `json:"affiliation" binding:"omitempty,oneof=internal external"`
	Roster      []GuestRequest `json:"roster" binding:"omitempty,dive"`
}

func (g GuestsRequest) ToDomain() booking.GuestComposition {
	out := booking.GuestComposition{
		Adults:      g.Adults,
		Children:    g.Children,
		Toddlers:    g.Toddlers,
		Affiliation: booking.Affiliation(g.Affiliation),
	}
	for _, r := range g.Roster {
		out.Roster = append(out.Roster, booking.Guest{
			Name:        strings.TrimSpace(r.Name),
			Type:        booking.PersonType(r.Type),
			Affiliation: booking.Affiliation(r.Affiliation),
		})
	}
	return out
}

// StayRequest is the shared shape of quote, conflict and prepare requests. Rooms with
// their own dates or guests list them under room_dates and room_guests.
type StayRequest struct {
	RangeRequest
	Rooms      []string                 `json:"rooms"`
	Bulk       bool                     `json:"bulk"`
	Mode       string                   `json:"mode" binding:"omitempty,oneof=aggregate roster bulk"`
	RoomCount  int                      `json:"room_count" binding:"min=0"`
	RoomTier   string                   `json:"room_tier" binding:"omitempty,oneof=small large"`
	RoomDates  map[string]RangeRequest  `json:"room_dates"`
	Guests     GuestsRequest            `json:"guests"`
	RoomGuests map[string]GuestsRequest `json:"room_guests"`
}

type stay struct {
	rng        calendar.DateRange
	rooms      []room.ID
	roomRanges map[room.ID]calendar.DateRange
	roomGuests map[room.ID]booking.GuestComposition
}

func (r StayRequest) parse() (stay, error) {
	rng, err := r.RangeRequest.ToDomain()
	if err != nil {
		return stay{}, err
	}
	out := stay{rng: rng}
	for _, id := range r.Rooms {
		out.rooms = append(out.rooms, room.ID(strings.TrimSpace(id)))
	}
	if len(r.RoomDates) > 0 {
		out.roomRanges = make(map[room.ID]calendar.DateRange, len(r.RoomDates))
		for id, rr := range r.RoomDates {
			d, err := rr.ToDomain()
			if err != nil {
				return stay{}, errs.Wrapf(err, "room %s", id)
			}
			out.roomRanges[room.ID(id)] = d
		}
	}
	if len(r.RoomGuests) > 0 {
		out.roomGuests = make(map[room.ID]booking.GuestComposition, len(r.RoomGuests))
		for id, g := range r.RoomGuests {
			out.roomGuests[room.ID(id)] = g.ToDomain()
		}
	}
	return out, nil
}

type QuoteRequest struct {
	StayRequest
}

func (r QuoteRequest) ToInput() (commands.QuoteInput, error) {
	s, err := r.parse()
	if err != nil {
		return commands.QuoteInput{}, err
	}
	return commands.QuoteInput{
		Mode:       pricing.Mode(r.Mode),
		Bulk:       r.Bulk,
		Rooms:      s.rooms,
		RoomCount:  r.RoomCount,
		RoomTier:   room.SizeTier(r.RoomTier),
		Range:      s.rng,
		RoomRanges: s.roomRanges,
		Guests:     r.Guests.ToDomain(),
		RoomGuests: s.roomGuests,
	}, nil
}

type PrepareRequest struct {
	StayRequest
	SessionToken     *uuid.UUID `json:"session_token"`
	ExcludeBookingID *uuid.UUID `json:"exclude_booking_id"`
}

func (r PrepareRequest) ToInput() (commands.PrepareInput, error) {
	s, err := r.parse()
	if err != nil {
		return commands.PrepareInput{}, err
	}
	return commands.PrepareInput{
		SessionToken:     ptr.Deref(r.SessionToken, uuid.Nil),
		ExcludeBookingID: ptr.Deref(r.ExcludeBookingID, uuid.Nil),
		Mode:             pricing.Mode(r.Mode),
		Bulk:             r.Bulk,
		Rooms:            s.rooms,
		Range:            s.rng,
		RoomRanges:       s.roomRanges,
		Guests:           r.Guests.ToDomain(),
		RoomGuests:       s.roomGuests,
	}, nil
}

type ConflictRequest struct {
	RangeRequest
	Rooms            []string                `json:"rooms"`
	Bulk             bool                    `json:"bulk"`
	RoomDates        map[string]RangeRequest `json:"room_dates"`
	ExcludeBookingID *uuid.UUID              `json:"exclude_booking_id"`
	SessionToken     *uuid.UUID              `json:"session_token"`
}

func (r ConflictRequest) ToInput() (queries.ConflictCheckInput, error) {
	s, err := StayRequest{RangeRequest: r.RangeRequest, Rooms: r.Rooms, RoomDates: r.RoomDates}.parse()
	if err != nil {
		return queries.ConflictCheckInput{}, err
	}
	return queries.ConflictCheckInput{
		Range:            s.rng,
		Rooms:            s.rooms,
		Bulk:             r.Bulk,
		RoomRanges:       s.roomRanges,
		ExcludeBookingID: ptr.Deref(r.ExcludeBookingID, uuid.Nil),
		SessionToken:     ptr.Deref(r.SessionToken, uuid.Nil),
	}, nil
}

type VerifyHoldRequest struct {
	Token string `json:"token" binding:"required"`
}
