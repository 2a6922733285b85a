// Package pricing computes stay prices under the tiered, roster and bulk models.
//
// The only intermediate rounding is the averaged per-guest surcharge in aggregate mode,
// rounded half up before it is multiplied. Breakdown lines carry the rounded rate so
// lines always sum to the total.
package pricing

import (
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
)

type Mode string

const (
	ModeAggregate Mode = "aggregate"
	ModeRoster    Mode = "roster"
	ModeBulk      Mode = "bulk"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeAggregate, ModeRoster, ModeBulk:
		return true
	default:
		return false
	}
}

// AggregateInput prices rooms from guest counts. Rooms wins over RoomCount; a count is
// priced at RoomTier, small when unset.
type AggregateInput struct {
	Affiliation booking.Affiliation
	Adults      int
	Children    int
	Toddlers    int
	Nights      int
	Rooms       []room.Room
	RoomCount   int
	RoomTier    room.SizeTier
}

// RosterInput prices each room from the guests assigned to it. Rooms missing from
// RoomGuests share Roster in contiguous chunks.
type RosterInput struct {
	Rooms      []room.Room
	Nights     int
	Roster     []booking.Guest
	RoomGuests map[room.ID][]booking.Guest
}

type BulkInput struct {
	Nights int
	Guests booking.GuestComposition
}

type Request struct {
	Mode      Mode
	Aggregate AggregateInput
	Roster    RosterInput
	Bulk      BulkInput
}

type Calculator struct {
	settings Settings
}

func NewCalculator(s Settings) *Calculator {
	return &Calculator{settings: s}
}

func (c *Calculator) Settings() Settings { return c.settings }

func (c *Calculator) Compute(req Request) (Quote, error) {
	switch req.Mode {
	case ModeAggregate:
		return c.Aggregate(req.Aggregate)
	case ModeRoster:
		return c.Roster(req.Roster)
	case ModeBulk:
		return c.Bulk(req.Bulk)
	default:
		return Quote{}, errs.Mark(errs.Newf("mode %q", req.Mode), ErrUnknownMode)
	}
}

func (c *Calculator) Aggregate(in AggregateInput) (Quote, error) {
	if in.Nights < 0 || in.Adults < 0 || in.Children < 0 || in.Toddlers < 0 || in.RoomCount < 0 {
		return Quote{}, invalidInput("negative nights or guest counts")
	}
	if in.Adults+in.Children+in.Toddlers > 0 && !in.Affiliation.IsValid() {
		return Quote{}, invalidInput("affiliation %q", in.Affiliation)
	}
	aff := in.Affiliation
	if aff == "" {
		aff = booking.AffiliationExternal
	}

	tiers, err := aggregateTiers(in)
	if err != nil {
		return Quote{}, err
	}

	lines := make([]Line, 0, len(tiers)+3)
	var adultSum, childSum int64
	for _, rt := range tiers {
		rates, err := c.settings.TierRates(aff, rt.tier)
		if err != nil {
			return Quote{}, err
		}
		l := newLine(CategoryRoom, 1, rates.Empty, in.Nights)
		l.Room, l.Tier, l.Affiliation = rt.id, rt.tier, aff
		lines = append(lines, l)
		adultSum += rates.Adult
		childSum += rates.Child
	}

	n := int64(len(tiers))
	if in.Adults > 0 {
		l := newLine(CategoryAdult, in.Adults, roundedMean(adultSum, n), in.Nights)
		l.Affiliation = aff
		lines = append(lines, l)
	}
	if in.Children > 0 {
		l := newLine(CategoryChild, in.Children, roundedMean(childSum, n), in.Nights)
		l.Affiliation = aff
		lines = append(lines, l)
	}
	if in.Toddlers > 0 {
		l := newLine(CategoryToddler, in.Toddlers, 0, in.Nights)
		l.Affiliation = aff
		lines = append(lines, l)
	}
	return newQuote(ModeAggregate, in.Nights, lines), nil
}

type roomTier struct {
	id   room.ID
	tier room.SizeTier
}

func aggregateTiers(in AggregateInput) ([]roomTier, error) {
	if len(in.Rooms) > 0 {
		out := make([]roomTier, 0, len(in.Rooms))
		for _, r := range in.Rooms {
			out = append(out, roomTier{id: r.ID(), tier: r.Tier()})
		}
		return out, nil
	}
	if in.RoomCount == 0 {
		return nil, invalidInput("at least one room is required")
	}
	tier := in.RoomTier
	if tier == "" {
		tier = room.TierSmall
	}
	if !tier.IsValid() {
		return nil, invalidInput("room tier %q", tier)
	}
	out := make([]roomTier, in.RoomCount)
	for i := range out {
		out[i] = roomTier{tier: tier}
	}
	return out, nil
}

func (c *Calculator) Roster(in RosterInput) (Quote, error) {
	if in.Nights < 0 {
		return Quote{}, invalidInput("negative nights")
	}
	if len(in.Rooms) == 0 {
		return Quote{}, invalidInput("at least one room is required")
	}
	for _, g := range in.Roster {
		if err := g.Validate(); err != nil {
			return Quote{}, invalidInput("%s", err)
		}
	}
	for id, guests := range in.RoomGuests {
		for _, g := range guests {
			if err := g.Validate(); err != nil {
				return Quote{}, invalidInput("room %s: %s", id, err)
			}
		}
	}

	assigned := AssignRoster(in.Rooms, in.Roster, in.RoomGuests)

	var lines []Line
	for _, r := range in.Rooms {
		guests := assigned[r.ID()]
		bracket := Bracket(guests)
		rates, err := c.settings.TierRates(bracket, r.Tier())
		if err != nil {
			return Quote{}, err
		}
		l := newLine(CategoryRoom, 1, rates.Empty, in.Nights)
		l.Room, l.Tier, l.Affiliation = r.ID(), r.Tier(), bracket
		lines = append(lines, l)

		guestLines, err := c.rosterLines(r, guests, in.Nights)
		if err != nil {
			return Quote{}, err
		}
		lines = append(lines, guestLines...)
	}
	return newQuote(ModeRoster, in.Nights, lines), nil
}

// rosterLines groups a room's guests by affiliation and person type; each group pays
// its own affiliation's rate at the room's tier.
func (c *Calculator) rosterLines(r room.Room, guests []booking.Guest, nights int) ([]Line, error) {
	var lines []Line
	for _, aff := range []booking.Affiliation{booking.AffiliationInternal, booking.AffiliationExternal} {
		adults, children := 0, 0
		for _, g := range guests {
			if g.Affiliation != aff {
				continue
			}
			switch g.Type {
			case booking.PersonAdult:
				adults++
			case booking.PersonChild:
				children++
			case booking.PersonToddler:
			}
		}
		if adults == 0 && children == 0 {
			continue
		}
		rates, err := c.settings.TierRates(aff, r.Tier())
		if err != nil {
			return nil, err
		}
		for _, g := range []struct {
			cat  Category
			qty  int
			rate int64
		}{
			{CategoryAdult, adults, rates.Adult},
			{CategoryChild, children, rates.Child},
		} {
			if g.qty == 0 {
				continue
			}
			l := newLine(g.cat, g.qty, g.rate, nights)
			l.Room, l.Tier, l.Affiliation = r.ID(), r.Tier(), aff
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (c *Calculator) Bulk(in BulkInput) (Quote, error) {
	if in.Nights < 0 {
		return Quote{}, invalidInput("negative nights")
	}
	if err := in.Guests.Validate(); err != nil {
		return Quote{}, invalidInput("%s", err)
	}

	base, err := c.bulkBase()
	if err != nil {
		return Quote{}, err
	}
	lines := []Line{newLine(CategoryBase, 1, base, in.Nights)}

	guests := in.Guests.Guests()
	for _, aff := range []booking.Affiliation{booking.AffiliationInternal, booking.AffiliationExternal} {
		adults, children := 0, 0
		for _, g := range guests {
			if g.Affiliation != aff {
				continue
			}
			switch g.Type {
			case booking.PersonAdult:
				adults++
			case booking.PersonChild:
				children++
			case booking.PersonToddler:
			}
		}
		if adults == 0 && children == 0 {
			continue
		}
		_, sc, err := c.settings.BulkRates(aff)
		if err != nil {
			return Quote{}, err
		}
		if adults > 0 {
			l := newLine(CategoryAdult, adults, sc.Adult, in.Nights)
			l.Affiliation = aff
			lines = append(lines, l)
		}
		if children > 0 {
			l := newLine(CategoryChild, children, sc.Child, in.Nights)
			l.Affiliation = aff
			lines = append(lines, l)
		}
	}
	return newQuote(ModeBulk, in.Nights, lines), nil
}

func (c *Calculator) bulkBase() (int64, error) {
	if c.settings.Bulk == nil {
		return 0, missing("bulk")
	}
	if c.settings.Bulk.Base == nil {
		return 0, missing("bulk.base")
	}
	if *c.settings.Bulk.Base < 0 {
		return 0, &ConfigurationError{Path: "bulk.base", Reason: "negative rate"}
	}
	return *c.settings.Bulk.Base, nil
}

// Bracket is internal when any guest is internal, else external. An empty room is external.
func Bracket(guests []booking.Guest) booking.Affiliation {
	for _, g := range guests {
		if g.Affiliation == booking.AffiliationInternal {
			return booking.AffiliationInternal
		}
	}
	return booking.AffiliationExternal
}

// AssignRoster maps every room to its guests: explicit lists are kept, the roster is
// split over the remaining rooms in order with the remainder going to the first rooms.
func AssignRoster(rooms []room.Room, roster []booking.Guest, explicit map[room.ID][]booking.Guest) map[room.ID][]booking.Guest {
	out := make(map[room.ID][]booking.Guest, len(rooms))
	var open []room.ID
	for _, r := range rooms {
		if guests, ok := explicit[r.ID()]; ok {
			out[r.ID()] = guests
			continue
		}
		open = append(open, r.ID())
	}
	if len(open) == 0 {
		return out
	}

	size, rest := len(roster)/len(open), len(roster)%len(open)
	offset := 0
	for i, id := range open {
		n := size
		if i < rest {
			n++
		}
		out[id] = roster[offset : offset+n]
		offset += n
	}
	return out
}

// roundedMean is sum/n rounded half up; rates are never negative.
func roundedMean(sum, n int64) int64 {
	if n == 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}
