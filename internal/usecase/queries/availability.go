package queries

import (
	"context"
	"slices"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"

	"golang.org/x/sync/errgroup"
)

type AvailabilityQueries interface {
	RoomDay(ctx context.Context, roomID room.ID, date calendar.Date, excl availability.Exclusion) (*DayStatusView, error)
	PropertyDay(ctx context.Context, date calendar.Date, excl availability.Exclusion) (*PropertyDayView, error)
	Month(ctx context.Context, surface fsm.Surface) (*MonthView, error)
}

type availabilityQueriesImpl struct {
	rooms    usecase.RoomReader
	avail    usecase.AvailabilityReader
	bookings usecase.BookingReader
	resolver *availability.Resolver
}

func NewAvailabilityQueries(
	rooms usecase.RoomReader,
	avail usecase.AvailabilityReader,
	bookings usecase.BookingReader,
	resolver *availability.Resolver,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		rooms:    rooms,
		avail:    avail,
		bookings: bookings,
		resolver: resolver,
	}
}

func (q *availabilityQueriesImpl) RoomDay(ctx context.Context, roomID room.ID, date calendar.Date, excl availability.Exclusion) (*DayStatusView, error) {
	if _, err := usecase.ResolveRooms(ctx, q.rooms, []room.ID{roomID}, false); err != nil {
		return nil, err
	}
	st, err := q.avail.GetRoomAvailability(ctx, date, roomID, excl)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "availability of room %s", roomID), usecase.ErrRepositoryFailed)
	}
	view := newDayStatusView(date, roomID, st)
	return &view, nil
}

func (q *availabilityQueriesImpl) PropertyDay(ctx context.Context, date calendar.Date, excl availability.Exclusion) (*PropertyDayView, error) {
	rooms, err := usecase.ResolveRooms(ctx, q.rooms, nil, true)
	if err != nil {
		return nil, err
	}
	ids := room.IDs(rooms)
	statuses, err := usecase.RoomStatuses(ctx, q.avail, date, ids, excl)
	if err != nil {
		return nil, err
	}

	view := &PropertyDayView{
		DayStatusView: newDayStatusView(date, "", availability.Aggregate(slices.Values(statuses))),
		Rooms:         make([]DayStatusView, len(ids)),
	}
	for i, id := range ids {
		view.Rooms[i] = newDayStatusView(date, id, statuses[i])
	}
	return view, nil
}

// Month resolves every day of the surface's month from a single bookings read.
func (q *availabilityQueriesImpl) Month(ctx context.Context, surface fsm.Surface) (*MonthView, error) {
	var ids []room.ID
	if !surface.IsBulk() {
		ids = []room.ID{surface.Room}
	}

	var (
		rooms    []room.Room
		bookings []*booking.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = usecase.ResolveRooms(gctx, q.rooms, ids, surface.IsBulk())
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = q.bookings.ListBookings(gctx, ids...)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "list bookings"), usecase.ErrRepositoryFailed)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	targets := room.IDs(rooms)
	days := surface.Month.Days().Dates()
	view := &MonthView{Room: surface.Room, Month: surface.Month.String(), Days: make([]DayStatusView, len(days))}
	for i, d := range days {
		var st availability.Status
		if surface.IsBulk() {
			st = q.resolver.ResolveProperty(d, targets, bookings, surface.Exclusion)
		} else {
			st = q.resolver.ResolveRoom(d, surface.Room, bookings, surface.Exclusion)
		}
		view.Days[i] = newDayStatusView(d, surface.Room, st)
	}
	return view, nil
}
