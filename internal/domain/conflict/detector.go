// Package conflict decides whether a candidate stay overlaps an existing booking.
package conflict

import (
	"fmt"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrConflictDetected = errs.New("booking conflict detected")
	ErrEmptyCandidate   = errs.New("candidate must name at least one room")
)

// Candidate is a stay being considered. RoomRanges overrides Range for individual rooms.
type Candidate struct {
	Range      calendar.DateRange
	Rooms      []room.ID
	RoomRanges map[room.ID]calendar.DateRange
}

func (c Candidate) Validate() error {
	if len(c.Rooms) == 0 {
		return ErrEmptyCandidate
	}
	if err := c.Range.Validate(); err != nil {
		return err
	}
	for id, r := range c.RoomRanges {
		if err := r.Validate(); err != nil {
			return errs.Wrapf(err, "range for room %s", id)
		}
	}
	return nil
}

// CandidateFor describes a stored or drafted booking as a candidate, keeping its per-room
// ranges.
func CandidateFor(b *booking.Booking) Candidate {
	c := Candidate{Range: b.Dates(), Rooms: b.Rooms()}
	for _, id := range c.Rooms {
		o, ok := b.Override(id)
		if !ok || o.Dates == nil {
			continue
		}
		if c.RoomRanges == nil {
			c.RoomRanges = make(map[room.ID]calendar.DateRange)
		}
		c.RoomRanges[id] = *o.Dates
	}
	return c
}

// RangeFor is the candidate's effective range in room id.
func (c Candidate) RangeFor(id room.ID) calendar.DateRange {
	if r, ok := c.RoomRanges[id]; ok {
		return r
	}
	return c.Range
}

// Result is the first conflict found, if any.
type Result struct {
	Booking *booking.Booking
	Room    room.ID
}

func (r Result) HasConflict() bool {
	return r.Booking != nil
}

// Err returns nil when there is no conflict.
func (r Result) Err() error {
	if !r.HasConflict() {
		return nil
	}
	return &ConflictError{
		BookingID: r.Booking.ID(),
		Room:      r.Room,
		Existing:  r.Booking.EffectiveRange(r.Room),
	}
}

type ConflictError struct {
	BookingID uuid.UUID
	Room      room.ID
	Existing  calendar.DateRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked for %s (booking %s)", e.Room, e.Existing, e.BookingID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflictDetected
}

type Detector struct {
	clock clock.Clock
}

func NewDetector(c clock.Clock) *Detector {
	return &Detector{clock: c}
}

// Detect walks target rooms in order and returns the first booking whose effective
// range in that room shares a night with the candidate's. A zero excludeID excludes nothing.
func (d *Detector) Detect(c Candidate, bookings []*booking.Booking, excludeID uuid.UUID) Result {
	now := d.now()
	for _, id := range c.Rooms {
		want := c.RangeFor(id)
		if want.Nights() == 0 {
			continue
		}
		for _, b := range bookings {
			if excludeID != uuid.Nil && b.ID() == excludeID {
				continue
			}
			if !b.HasRoom(id) || !b.HoldsNights(now) {
				continue
			}
			if want.Overlaps(b.EffectiveRange(id)) {
				return Result{Booking: b, Room: id}
			}
		}
	}
	return Result{}
}

func (d *Detector) now() time.Time {
	if d == nil || d.clock == nil {
		return time.Time{}
	}
	return d.clock.Now()
}
