package queries

import (
	"context"
	"slices"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"

	"github.com/google/uuid"
)

type ConflictCheckInput struct {
	Range            calendar.DateRange
	Rooms            []room.ID
	Bulk             bool
	RoomRanges       map[room.ID]calendar.DateRange
	ExcludeBookingID uuid.UUID
	SessionToken     uuid.UUID
}

type ConflictQueries interface {
	Check(ctx context.Context, in ConflictCheckInput) (*ConflictView, error)
}

type conflictQueriesImpl struct {
	rooms    usecase.RoomReader
	bookings usecase.BookingReader
	detector *conflict.Detector
}

func NewConflictQueries(rooms usecase.RoomReader, bookings usecase.BookingReader, detector *conflict.Detector) ConflictQueries {
	return &conflictQueriesImpl{rooms: rooms, bookings: bookings, detector: detector}
}

// Check answers whether the candidate shares a night with a stored booking. Holds of the
// caller's own session are ignored, like the excluded booking.
func (q *conflictQueriesImpl) Check(ctx context.Context, in ConflictCheckInput) (*ConflictView, error) {
	rooms, err := usecase.ResolveRooms(ctx, q.rooms, in.Rooms, in.Bulk)
	if err != nil {
		return nil, err
	}
	candidate := conflict.Candidate{Range: in.Range, Rooms: room.IDs(rooms), RoomRanges: in.RoomRanges}
	if err := candidate.Validate(); err != nil {
		return nil, errs.Mark(err, usecase.ErrInvalidRequest)
	}

	bookings, err := q.bookings.ListBookings(ctx, candidate.Rooms...)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "list bookings"), usecase.ErrRepositoryFailed)
	}

	excl := availability.Exclusion{BookingID: in.ExcludeBookingID, SessionToken: in.SessionToken}
	visible := slices.DeleteFunc(slices.Clone(bookings), excl.Excludes)

	res := q.detector.Detect(candidate, visible, in.ExcludeBookingID)
	if !res.HasConflict() {
		return &ConflictView{}, nil
	}
	existing := res.Booking.EffectiveRange(res.Room)
	id := res.Booking.ID()
	return &ConflictView{
		Conflict:  true,
		Room:      res.Room,
		BookingID: &id,
		Status:    res.Booking.Status().String(),
		Existing:  &existing,
	}, nil
}
