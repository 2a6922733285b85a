package queries

import (
	"context"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type PriceQueries interface {
	BookingPrice(ctx context.Context, id uuid.UUID) (*PriceBreakdownView, error)
}

type priceQueriesImpl struct {
	rooms    usecase.RoomReader
	settings usecase.SettingsReader
	bookings usecase.BookingReader
}

func NewPriceQueries(rooms usecase.RoomReader, settings usecase.SettingsReader, bookings usecase.BookingReader) PriceQueries {
	return &priceQueriesImpl{rooms: rooms, settings: settings, bookings: bookings}
}

// BookingPrice recomputes the breakdown under the current configuration and reconciles
// it to the stored total.
func (q *priceQueriesImpl) BookingPrice(ctx context.Context, id uuid.UUID) (*PriceBreakdownView, error) {
	var (
		b        *booking.Booking
		rooms    []room.Room
		settings pricing.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		b, err = q.bookings.FindBooking(gctx, id)
		return usecase.BookingLookupErr(err)
	})
	g.Go(func() error {
		var err error
		rooms, err = q.rooms.ListRooms(gctx)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "list rooms"), usecase.ErrRepositoryFailed)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = q.settings.GetSettings(gctx)
		return usecase.SettingsLookupErr(err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stay, err := usecase.StayFromBooking(b, room.Index(rooms))
	if err != nil {
		return nil, err
	}
	quote, err := usecase.QuoteStay(pricing.NewCalculator(settings), stay)
	if err != nil {
		return nil, err
	}

	return &PriceBreakdownView{
		BookingID: b.ID(),
		Stored:    b.TotalPrice(),
		Quote:     quote.Reconcile(b.TotalPrice()),
	}, nil
}
