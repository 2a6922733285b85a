package usecase

import (
	"context"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// RoomStatuses asks for every room's status on day concurrently; the result is in ids order.
func RoomStatuses(ctx context.Context, reader AvailabilityReader, day calendar.Date, ids []room.ID, excl availability.Exclusion) ([]availability.Status, error) {
	out := make([]availability.Status, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			st, err := reader.GetRoomAvailability(gctx, day, id, excl)
			if err != nil {
				return errs.Wrapf(err, "availability of room %s on %s", id, day)
			}
			out[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errs.Mark(err, ErrRepositoryFailed)
	}
	return out, nil
}
