package availability

import (
	"iter"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// Exclusion makes the resolver ignore one booking (being edited) and/or the holds
// created by one booking session.
type Exclusion struct {
	BookingID    uuid.UUID
	SessionToken uuid.UUID
}

func (e Exclusion) Excludes(b *booking.Booking) bool {
	if e.BookingID != uuid.Nil && b.ID() == e.BookingID {
		return true
	}
	return b.OwnedBy(e.SessionToken)
}

// ResolveDayStatus looks at the night ending on day and the night starting on day:
// neither occupied is available, exactly one is edge, both is occupied.
func ResolveDayStatus(day calendar.Date, ranges []calendar.DateRange) Status {
	before := day.AddDays(-1)
	var takenBefore, takenAfter bool
	for _, r := range ranges {
		takenBefore = takenBefore || r.OccupiesNight(before)
		takenAfter = takenAfter || r.OccupiesNight(day)
	}
	return combine(takenBefore, takenAfter, StatusOccupied)
}

type Resolver struct {
	clock clock.Clock
}

func NewResolver(c clock.Clock) *Resolver {
	return &Resolver{clock: c}
}

func (r *Resolver) now() time.Time {
	if r == nil || r.clock == nil {
		return time.Time{}
	}
	return r.clock.Now()
}

// ResolveRoom computes the status of day for one room. When both adjacent nights are
// taken the strongest occupant wins: blocked > occupied > proposed.
func (r *Resolver) ResolveRoom(day calendar.Date, id room.ID, bookings []*booking.Booking, excl Exclusion) Status {
	now := r.now()
	before := day.AddDays(-1)

	var beforeStatus, afterStatus Status
	for _, b := range bookings {
		if excl.Excludes(b) || !b.HasRoom(id) || !b.HoldsNights(now) {
			continue
		}
		occupant := OccupantStatus(b.Status())
		stay := b.EffectiveRange(id)
		if stay.OccupiesNight(before) {
			beforeStatus = Max(beforeStatus, occupant)
		}
		if stay.OccupiesNight(day) {
			afterStatus = Max(afterStatus, occupant)
		}
	}
	return combine(beforeStatus != 0, afterStatus != 0, Max(beforeStatus, afterStatus))
}

// ResolveProperty is the whole-property status: selectable only when every room is.
func (r *Resolver) ResolveProperty(day calendar.Date, ids []room.ID, bookings []*booking.Booking, excl Exclusion) Status {
	return Aggregate(func(yield func(Status) bool) {
		for _, id := range ids {
			if !yield(r.ResolveRoom(day, id, bookings, excl)) {
				return
			}
		}
	})
}

// Aggregate folds per-room statuses into a property status.
func Aggregate(statuses iter.Seq[Status]) Status {
	out := StatusAvailable
	var blocking Status
	for s := range statuses {
		switch s {
		case StatusAvailable:
		case StatusEdge:
			out = StatusEdge
		case StatusProposed, StatusOccupied, StatusBlocked:
			blocking = Max(blocking, s)
		}
	}
	if blocking != 0 {
		return blocking
	}
	return out
}

func combine(before, after bool, full Status) Status {
	switch {
	case before && after:
		return full
	case before || after:
		return StatusEdge
	default:
		return StatusAvailable
	}
}

// OccupantStatus is the status a booking gives the nights it holds.
func OccupantStatus(s booking.Status) Status {
	switch s {
	case booking.StatusBlocked:
		return StatusBlocked
	case booking.StatusConfirmed:
		return StatusOccupied
	case booking.StatusProposed:
		return StatusProposed
	case booking.StatusCanceled:
		return StatusAvailable
	default:
		return StatusAvailable
	}
}
