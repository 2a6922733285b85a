package usecase

import (
	"context"
	"log/slog"
	"slices"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/domain/selection"
	"lodge-booking/internal/pkg/errs"
)

// IntervalValidator decides whether a span may be selected on a surface: every day must
// be available or edge in every target room, and a fresh read of the bookings must show
// no shared night.
type IntervalValidator struct {
	rooms    RoomReader
	avail    AvailabilityReader
	bookings BookingReader
	detector *conflict.Detector
	// maxNights bounds the day walk; 0 leaves it unbounded.
	maxNights int
	logger    *slog.Logger
}

func NewIntervalValidator(
	rooms RoomReader,
	avail AvailabilityReader,
	bookings BookingReader,
	detector *conflict.Detector,
	maxNights int,
	logger *slog.Logger,
) *IntervalValidator {
	return &IntervalValidator{
		rooms:     rooms,
		avail:     avail,
		bookings:  bookings,
		detector:  detector,
		maxNights: maxNights,
		logger:    logger,
	}
}

func (v *IntervalValidator) Validate(ctx context.Context, surface selection.Surface, span calendar.DateRange) error {
	if err := span.Validate(); err != nil {
		return err
	}
	if err := span.CheckNights(v.maxNights); err != nil {
		return err
	}

	var ids []room.ID
	if !surface.IsBulk() {
		ids = []room.ID{surface.Room}
	}
	targets, err := ResolveRooms(ctx, v.rooms, ids, surface.IsBulk())
	if err != nil {
		return err
	}
	targetIDs := room.IDs(targets)

	for _, day := range span.Dates() {
		if err := ctx.Err(); err != nil {
			return err
		}
		statuses, err := RoomStatuses(ctx, v.avail, day, targetIDs, surface.Exclusion)
		if err != nil {
			return err
		}
		if rejected := rejectDay(day, targetIDs, statuses); rejected != nil {
			v.logger.DebugContext(ctx, "interval rejected",
				slog.String("day", day.String()),
				slog.String("room", string(rejected.Room)),
				slog.String("status", rejected.Status.String()))
			return rejected
		}
	}

	fresh, err := v.bookings.ListBookings(ctx, targetIDs...)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "list bookings"), ErrRepositoryFailed)
	}
	return DetectConflict(v.detector, conflict.Candidate{Range: span, Rooms: targetIDs}, fresh, surface.Exclusion)
}

// rejectDay reports the room with the strongest blocking status, nil when the day is selectable.
func rejectDay(day calendar.Date, ids []room.ID, statuses []availability.Status) *selection.RejectedError {
	worst := availability.Aggregate(slices.Values(statuses))
	if worst.IsSelectable() {
		return nil
	}
	i := slices.Index(statuses, worst)
	return &selection.RejectedError{Day: day, Room: ids[i], Status: worst}
}

// DetectConflict runs the detector over bookings minus the excluded booking and session
// holds, returning a rejection that wraps the conflict.
func DetectConflict(d *conflict.Detector, c conflict.Candidate, bookings []*booking.Booking, excl availability.Exclusion) error {
	visible := slices.DeleteFunc(slices.Clone(bookings), excl.Excludes)
	res := d.Detect(c, visible, excl.BookingID)
	if !res.HasConflict() {
		return nil
	}
	existing := res.Booking.EffectiveRange(res.Room)
	return &selection.RejectedError{
		Day:    calendar.MaxDate(existing.Start, c.RangeFor(res.Room).Start),
		Room:   res.Room,
		Status: availability.OccupantStatus(res.Booking.Status()),
		Cause:  res.Err(),
	}
}
