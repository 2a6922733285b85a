//go:build unit

package booking_test

import (
	"testing"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, []room.ID{"r1"}, actual.Rooms())
		assert.Equal(t, 2, actual.Dates().Nights())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no rooms",
				mutate: func(b *builder.BookingBuilder) { b.WithRooms() },
				errIs:  booking.ErrNoRooms,
			},
			{
				name:   "unknown status",
				mutate: func(b *builder.BookingBuilder) { b.WithStatus("pending") },
				errIs:  booking.ErrInvalidStatus,
			},
			{
				name: "inverted range",
				mutate: func(b *builder.BookingBuilder) {
					b.Dates = calendar.DateRange{Start: calendar.MustParseDate("2025-07-05"), End: calendar.MustParseDate("2025-07-01")}
				},
				errIs: calendar.ErrInvalidRange,
			},
			{
				name:   "override outside booking rooms",
				mutate: func(b *builder.BookingBuilder) { b.WithRoomDates("r9", "2025-07-01", "2025-07-02") },
				errIs:  booking.ErrUnknownOverride,
			},
			{
				name:   "negative price",
				mutate: func(b *builder.BookingBuilder) { b.WithTotalPrice(-1) },
				errIs:  booking.ErrNegativePrice,
			},
			{
				name:   "hold without session",
				mutate: func(b *builder.BookingBuilder) { b.AsProposed(uuid.Nil, nil) },
				errIs:  booking.ErrHoldWithoutOwner,
			},
			{
				name:   "zero-night booking is allowed",
				mutate: func(b *builder.BookingBuilder) { b.WithDates("2025-07-01", "2025-07-01") },
			},
		})
	})

	t.Run("effective range honours per-room override", func(t *testing.T) {
		b := builder.NewBookingBuilder().
			WithRooms("r1", "r2").
			WithDates("2025-07-01", "2025-07-05").
			WithRoomDates("r2", "2025-07-03", "2025-07-05").
			MustBuild(t)

		assert.Equal(t, calendar.MustRange("2025-07-01", "2025-07-05"), b.EffectiveRange("r1"))
		assert.Equal(t, calendar.MustRange("2025-07-03", "2025-07-05"), b.EffectiveRange("r2"))

		assert.True(t, b.OccupiesNight("r1", calendar.MustParseDate("2025-07-01"), time.Time{}))
		assert.False(t, b.OccupiesNight("r2", calendar.MustParseDate("2025-07-01"), time.Time{}))
		assert.False(t, b.OccupiesNight("r2", calendar.MustParseDate("2025-07-05"), time.Time{}), "checkout night")
		assert.False(t, b.OccupiesNight("r3", calendar.MustParseDate("2025-07-03"), time.Time{}))
	})

	t.Run("effective guests honour per-room override", func(t *testing.T) {
		kids := booking.GuestComposition{Children: 2, Affiliation: booking.AffiliationInternal}
		b := builder.NewBookingBuilder().WithRooms("r1", "r2").WithRoomGuests("r2", kids).MustBuild(t)

		g, overridden := b.EffectiveGuests("r2")
		assert.True(t, overridden)
		assert.Equal(t, kids, g)

		_, overridden = b.EffectiveGuests("r1")
		assert.False(t, overridden)
	})

	t.Run("hold expiry", func(t *testing.T) {
		owner := uuid.New()
		expires := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		b := builder.NewBookingBuilder().AsProposed(owner, &expires).MustBuild(t)

		assert.False(t, b.IsExpired(expires.Add(-time.Second)))
		assert.True(t, b.IsExpired(expires))
		assert.True(t, b.HoldsNights(expires.Add(-time.Minute)))
		assert.False(t, b.HoldsNights(expires.Add(time.Minute)))
		assert.False(t, b.IsExpired(time.Time{}), "zero time disables expiry")

		assert.True(t, b.OwnedBy(owner))
		assert.False(t, b.OwnedBy(uuid.New()))
		assert.False(t, b.OwnedBy(uuid.Nil))
	})

	t.Run("canceled bookings hold nothing", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCanceled).MustBuild(t)
		assert.False(t, b.OccupiesNight("r1", b.Dates().Start, time.Time{}))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
