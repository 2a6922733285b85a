package commands

import (
	"context"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"
)

type QuoteInput struct {
	Mode       pricing.Mode
	Bulk       bool
	Rooms      []room.ID
	RoomCount  int
	RoomTier   room.SizeTier
	Range      calendar.DateRange
	RoomRanges map[room.ID]calendar.DateRange
	Guests     booking.GuestComposition
	RoomGuests map[room.ID]booking.GuestComposition
}

type QuoteCommands interface {
	Quote(ctx context.Context, in QuoteInput) (*pricing.Quote, error)
}

type quoteCommandsImpl struct {
	rooms    usecase.RoomReader
	settings usecase.SettingsReader
}

func NewQuoteCommands(rooms usecase.RoomReader, settings usecase.SettingsReader) QuoteCommands {
	return &quoteCommandsImpl{rooms: rooms, settings: settings}
}

func (c *quoteCommandsImpl) Quote(ctx context.Context, in QuoteInput) (*pricing.Quote, error) {
	if err := in.Range.Validate(); err != nil {
		return nil, errs.Mark(err, usecase.ErrInvalidRequest)
	}
	if in.Mode != "" && !in.Mode.IsValid() {
		return nil, errs.Mark(errs.Newf("mode %q", in.Mode), pricing.ErrUnknownMode)
	}

	settings, err := c.settings.GetSettings(ctx)
	if err != nil {
		return nil, usecase.SettingsLookupErr(err)
	}

	var rooms []room.Room
	if in.Bulk || len(in.Rooms) > 0 {
		if rooms, err = usecase.ResolveRooms(ctx, c.rooms, in.Rooms, in.Bulk); err != nil {
			return nil, err
		}
	}

	q, err := usecase.QuoteStay(pricing.NewCalculator(settings), usecase.Stay{
		Mode:       in.Mode,
		Bulk:       in.Bulk,
		Rooms:      rooms,
		RoomCount:  in.RoomCount,
		RoomTier:   in.RoomTier,
		Range:      in.Range,
		RoomRanges: in.RoomRanges,
		Guests:     in.Guests,
		RoomGuests: in.RoomGuests,
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}
