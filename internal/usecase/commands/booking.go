package commands

import (
	"context"
	"log/slog"
	"time"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type PrepareInput struct {
	// SessionToken owns the resulting hold; a new one is issued when empty.
	SessionToken     uuid.UUID
	ExcludeBookingID uuid.UUID
	Mode             pricing.Mode
	Bulk             bool
	Rooms            []room.ID
	Range            calendar.DateRange
	RoomRanges       map[room.ID]calendar.DateRange
	Guests           booking.GuestComposition
	RoomGuests       map[room.ID]booking.GuestComposition
}

// Draft is a priced proposed booking, ready for the external booking-creation API.
type Draft struct {
	Booking *booking.Booking
	Quote   pricing.Quote
}

type BookingCommands interface {
	Prepare(ctx context.Context, in PrepareInput) (*Draft, error)
}

type bookingCommandsImpl struct {
	rooms    usecase.RoomReader
	settings usecase.SettingsReader
	bookings usecase.BookingReader
	holds    usecase.BookingWriter
	detector *conflict.Detector
	clock    clock.Clock
	holdTTL   time.Duration
	maxNights int
	logger    *slog.Logger
}

func NewBookingCommands(
	rooms usecase.RoomReader,
	settings usecase.SettingsReader,
	bookings usecase.BookingReader,
	holds usecase.BookingWriter,
	detector *conflict.Detector,
	clock clock.Clock,
	holdTTL time.Duration,
	maxNights int,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		rooms:    rooms,
		settings: settings,
		bookings: bookings,
		holds:    holds,
		detector: detector,
		clock:    clock,
		holdTTL:   holdTTL,
		maxNights: maxNights,
		logger:    logger,
	}
}

// Prepare re-reads bookings right before pricing so the draft reflects the freshest state,
// then stores the draft as the session's hold. The store's write-time check remains the
// final guard against a booking that slipped in between the read and the write.
func (c *bookingCommandsImpl) Prepare(ctx context.Context, in PrepareInput) (*Draft, error) {
	if err := in.Guests.Validate(); err != nil {
		return nil, errs.Mark(err, usecase.ErrInvalidRequest)
	}
	rooms, err := usecase.ResolveRooms(ctx, c.rooms, in.Rooms, in.Bulk)
	if err != nil {
		return nil, err
	}
	candidate := conflict.Candidate{Range: in.Range, Rooms: room.IDs(rooms), RoomRanges: in.RoomRanges}
	if err := candidate.Validate(); err != nil {
		return nil, errs.Mark(err, usecase.ErrInvalidRequest)
	}
	for _, id := range candidate.Rooms {
		if err := candidate.RangeFor(id).CheckNights(c.maxNights); err != nil {
			return nil, errs.Mark(err, usecase.ErrInvalidRequest)
		}
	}

	session := in.SessionToken
	if session == uuid.Nil {
		session = uuid.New()
	}

	var (
		settings pricing.Settings
		fresh    []*booking.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = c.settings.GetSettings(gctx)
		return usecase.SettingsLookupErr(err)
	})
	g.Go(func() error {
		var err error
		fresh, err = c.bookings.ListBookings(gctx, candidate.Rooms...)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "list bookings"), usecase.ErrRepositoryFailed)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excl := availability.Exclusion{BookingID: in.ExcludeBookingID, SessionToken: session}
	if err := usecase.DetectConflict(c.detector, candidate, fresh, excl); err != nil {
		return nil, err
	}

	quote, err := usecase.QuoteStay(pricing.NewCalculator(settings), usecase.Stay{
		Mode:       in.Mode,
		Bulk:       in.Bulk,
		Rooms:      rooms,
		Range:      in.Range,
		RoomRanges: in.RoomRanges,
		Guests:     in.Guests,
		RoomGuests: in.RoomGuests,
	})
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.holdTTL)
	draft, err := booking.New(booking.Params{
		Status:       booking.StatusProposed,
		Rooms:        candidate.Rooms,
		Dates:        in.Range,
		Overrides:    overrides(in.RoomRanges, in.RoomGuests),
		Guests:       in.Guests,
		Bulk:         in.Bulk,
		TotalPrice:   quote.Total,
		SessionToken: session,
		ExpiresAt:    &expiresAt,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrInvalidRequest)
	}

	if err := c.holds.SaveHold(ctx, draft, in.ExcludeBookingID); err != nil {
		if errs.Is(err, conflict.ErrConflictDetected) {
			return nil, err
		}
		return nil, errs.Mark(errs.Wrap(err, "save hold"), usecase.ErrRepositoryFailed)
	}

	c.logger.InfoContext(ctx, "booking draft prepared",
		slog.String("draft_id", draft.ID().String()),
		slog.String("range", in.Range.String()),
		slog.Int("rooms", len(candidate.Rooms)),
		slog.Int64("total", quote.Total))

	return &Draft{Booking: draft, Quote: quote}, nil
}

func overrides(ranges map[room.ID]calendar.DateRange, guests map[room.ID]booking.GuestComposition) map[room.ID]booking.RoomOverride {
	if len(ranges) == 0 && len(guests) == 0 {
		return nil
	}
	out := make(map[room.ID]booking.RoomOverride, len(ranges)+len(guests))
	for id, r := range ranges {
		o := out[id]
		o.Dates = &r
		out[id] = o
	}
	for id, g := range guests {
		o := out[id]
		o.Guests = &g
		out[id] = o
	}
	return out
}
