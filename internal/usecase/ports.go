// Package usecase holds the repository ports the engine reads through and the
// application services shared by commands and queries.
package usecase

import (
	"context"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"

	"github.com/google/uuid"
)

type RoomReader interface {
	ListRooms(ctx context.Context) ([]room.Room, error)
}

type SettingsReader interface {
	GetSettings(ctx context.Context) (pricing.Settings, error)
}

// BookingReader lists bookings, proposed holds included. With no room IDs every
// booking is returned.
type BookingReader interface {
	ListBookings(ctx context.Context, roomIDs ...room.ID) ([]*booking.Booking, error)
	FindBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

// BookingWriter stores proposed holds. A new hold replaces the earlier holds of the same
// session and is rejected with conflict.ErrConflictDetected when it shares a night with
// any other live booking except excludeBookingID. That write-time check is the final
// guard against double booking.
type BookingWriter interface {
	SaveHold(ctx context.Context, hold *booking.Booking, excludeBookingID uuid.UUID) error
}

type AvailabilityReader interface {
	GetRoomAvailability(ctx context.Context, date calendar.Date, roomID room.ID, excl availability.Exclusion) (availability.Status, error)
}

// Store is everything a repository backend provides.
type Store interface {
	RoomReader
	SettingsReader
	BookingReader
	BookingWriter
	AvailabilityReader
}
