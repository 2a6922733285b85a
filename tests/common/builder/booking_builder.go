//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type BookingBuilder struct {
	ID           uuid.UUID
	Status       booking.Status
	Rooms        []room.ID
	Dates        calendar.DateRange
	Overrides    map[room.ID]booking.RoomOverride
	Guests       booking.GuestComposition
	Bulk         bool
	TotalPrice   int64
	SessionToken uuid.UUID
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		Status: booking.StatusConfirmed,
		Rooms:  []room.ID{"r1"},
		Dates:  calendar.MustRange("2025-07-01", "2025-07-03"),
		Guests: booking.GuestComposition{
			Adults:      2,
			Affiliation: booking.AffiliationExternal,
		},
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.New(booking.Params{
		ID:           b.ID,
		Status:       b.Status,
		Rooms:        b.Rooms,
		Dates:        b.Dates,
		Overrides:    b.Overrides,
		Guests:       b.Guests,
		Bulk:         b.Bulk,
		TotalPrice:   b.TotalPrice,
		SessionToken: b.SessionToken,
		ExpiresAt:    b.ExpiresAt,
		CreatedAt:    b.CreatedAt,
	})
}

func (b *BookingBuilder) MustBuild(t testing.TB) *booking.Booking {
	t.Helper()
	out, err := b.BuildDomain()
	require.NoError(t, err)
	return out
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithRooms(ids ...room.ID) *BookingBuilder {
	b.Rooms = ids
	return b
}

func (b *BookingBuilder) WithDates(start, end string) *BookingBuilder {
	b.Dates = calendar.MustRange(start, end)
	return b
}

func (b *BookingBuilder) WithRoomDates(id room.ID, start, end string) *BookingBuilder {
	r := calendar.MustRange(start, end)
	o := b.override(id)
	o.Dates = &r
	b.Overrides[id] = o
	return b
}

func (b *BookingBuilder) WithRoomGuests(id room.ID, g booking.GuestComposition) *BookingBuilder {
	o := b.override(id)
	o.Guests = &g
	b.Overrides[id] = o
	return b
}

func (b *BookingBuilder) WithGuests(g booking.GuestComposition) *BookingBuilder {
	b.Guests = g
	return b
}

func (b *BookingBuilder) WithTotalPrice(p int64) *BookingBuilder {
	b.TotalPrice = p
	return b
}

func (b *BookingBuilder) AsProposed(session uuid.UUID, expiresAt *time.Time) *BookingBuilder {
	b.Status = booking.StatusProposed
	b.SessionToken = session
	b.ExpiresAt = expiresAt
	return b
}

func (b *BookingBuilder) AsBlocked() *BookingBuilder {
	b.Status = booking.StatusBlocked
	return b
}

func (b *BookingBuilder) AsBulk(ids ...room.ID) *BookingBuilder {
	b.Bulk = true
	b.Rooms = ids
	return b
}

func (b *BookingBuilder) override(id room.ID) booking.RoomOverride {
	if b.Overrides == nil {
		b.Overrides = make(map[room.ID]booking.RoomOverride)
	}
	return b.Overrides[id]
}
