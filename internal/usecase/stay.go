package usecase

import (
	"context"
	"slices"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
)

// Stay is a priced unit: a prospective booking or a stored one.
type Stay struct {
	// Mode may be left empty to pick bulk, roster or aggregate from the stay's shape.
	Mode       pricing.Mode
	Bulk       bool
	Rooms      []room.Room
	RoomCount  int
	RoomTier   room.SizeTier
	Range      calendar.DateRange
	RoomRanges map[room.ID]calendar.DateRange
	Guests     booking.GuestComposition
	RoomGuests map[room.ID]booking.GuestComposition
}

func (s Stay) ResolveMode() pricing.Mode {
	switch {
	case s.Mode != "":
		return s.Mode
	case s.Bulk:
		return pricing.ModeBulk
	case s.Guests.HasRoster() || len(s.RoomGuests) > 0 || len(s.RoomRanges) > 0:
		return pricing.ModeRoster
	default:
		return pricing.ModeAggregate
	}
}

func (s Stay) rangeFor(id room.ID) calendar.DateRange {
	if r, ok := s.RoomRanges[id]; ok {
		return r
	}
	return s.Range
}

// QuoteStay prices s. Rooms with their own dates are priced one by one in roster mode
// and combined.
func QuoteStay(calc *pricing.Calculator, s Stay) (pricing.Quote, error) {
	mode := s.ResolveMode()
	nights := s.Range.Nights()

	switch mode {
	case pricing.ModeBulk:
		return calc.Bulk(pricing.BulkInput{Nights: nights, Guests: s.Guests})

	case pricing.ModeAggregate:
		if len(s.RoomRanges) > 0 || len(s.RoomGuests) > 0 {
			return pricing.Quote{}, errs.Mark(errs.New("per-room dates or guests need roster pricing"), pricing.ErrInvalidInput)
		}
		adults, children, toddlers := s.Guests.Counts()
		aff := s.Guests.Affiliation
		if s.Guests.HasRoster() {
			aff = pricing.Bracket(s.Guests.Roster)
		}
		return calc.Aggregate(pricing.AggregateInput{
			Affiliation: aff,
			Adults:      adults,
			Children:    children,
			Toddlers:    toddlers,
			Nights:      nights,
			Rooms:       s.Rooms,
			RoomCount:   s.RoomCount,
			RoomTier:    s.RoomTier,
		})

	case pricing.ModeRoster:
		explicit := make(map[room.ID][]booking.Guest, len(s.RoomGuests))
		for id, g := range s.RoomGuests {
			explicit[id] = g.Guests()
		}
		if len(s.RoomRanges) == 0 {
			return calc.Roster(pricing.RosterInput{
				Rooms:      s.Rooms,
				Nights:     nights,
				Roster:     s.Guests.Guests(),
				RoomGuests: explicit,
			})
		}

		assigned := pricing.AssignRoster(s.Rooms, s.Guests.Guests(), explicit)
		parts := make([]pricing.Quote, 0, len(s.Rooms))
		for _, r := range s.Rooms {
			q, err := calc.Roster(pricing.RosterInput{
				Rooms:      []room.Room{r},
				Nights:     s.rangeFor(r.ID()).Nights(),
				RoomGuests: map[room.ID][]booking.Guest{r.ID(): assigned[r.ID()]},
			})
			if err != nil {
				return pricing.Quote{}, err
			}
			parts = append(parts, q)
		}
		return pricing.Combine(pricing.ModeRoster, parts...), nil

	default:
		return calc.Compute(pricing.Request{Mode: mode})
	}
}

// StayFromBooking rebuilds the priced shape of a stored booking.
func StayFromBooking(b *booking.Booking, rooms map[room.ID]room.Room) (Stay, error) {
	s := Stay{Bulk: b.IsBulk(), Range: b.Dates(), Guests: b.Guests()}
	for _, id := range b.Rooms() {
		r, ok := rooms[id]
		if !ok {
			return Stay{}, errs.Mark(errs.Newf("booking %s references room %s", b.ID(), id), ErrRoomNotFound)
		}
		s.Rooms = append(s.Rooms, r)

		o, ok := b.Override(id)
		if !ok {
			continue
		}
		if o.Dates != nil {
			if s.RoomRanges == nil {
				s.RoomRanges = make(map[room.ID]calendar.DateRange)
			}
			s.RoomRanges[id] = *o.Dates
		}
		if o.Guests != nil {
			if s.RoomGuests == nil {
				s.RoomGuests = make(map[room.ID]booking.GuestComposition)
			}
			s.RoomGuests[id] = *o.Guests
		}
	}
	return s, nil
}

// ResolveRooms looks up ids in order, or returns every room when bulk is set.
func ResolveRooms(ctx context.Context, reader RoomReader, ids []room.ID, bulk bool) ([]room.Room, error) {
	all, err := reader.ListRooms(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list rooms"), ErrRepositoryFailed)
	}
	if bulk {
		return all, nil
	}

	index := room.Index(all)
	out := make([]room.Room, 0, len(ids))
	for _, id := range ids {
		r, ok := index[id]
		if !ok {
			return nil, errs.Mark(errs.Newf("room %s", id), ErrRoomNotFound)
		}
		if !slices.ContainsFunc(out, func(x room.Room) bool { return x.ID() == id }) {
			out = append(out, r)
		}
	}
	return out, nil
}
