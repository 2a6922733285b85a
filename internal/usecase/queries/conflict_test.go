//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/usecase"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (m storeMocks) conflicts() queries.ConflictQueries {
	return queries.NewConflictQueries(m.rooms, m.bookings, conflict.NewDetector(clock.NewMockClock(testNow)))
}

func TestConflictQueries_Check(t *testing.T) {
	ctx := context.Background()
	stay := builder.NewBookingBuilder().WithRooms("r1", "r2").WithDates("2025-07-03", "2025-07-06").MustBuild(t)

	t.Run("overlap reports the first conflicting room", func(t *testing.T) {
		m := newStoreMocks(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r2"), room.ID("r1")).Return([]*booking.Booking{stay}, nil)

		view, err := m.conflicts().Check(ctx, queries.ConflictCheckInput{
			Range: calendar.MustRange("2025-07-05", "2025-07-08"),
			Rooms: []room.ID{"r2", "r1"},
		})

		require.NoError(t, err)
		assert.True(t, view.Conflict)
		assert.Equal(t, room.ID("r2"), view.Room)
		require.NotNil(t, view.BookingID)
		assert.Equal(t, stay.ID(), *view.BookingID)
		assert.Equal(t, "confirmed", view.Status)
		assert.Equal(t, calendar.MustRange("2025-07-03", "2025-07-06"), *view.Existing)
	})

	t.Run("checkout day is free", func(t *testing.T) {
		m := newStoreMocks(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r1")).Return([]*booking.Booking{stay}, nil)

		view, err := m.conflicts().Check(ctx, queries.ConflictCheckInput{
			Range: calendar.MustRange("2025-07-06", "2025-07-08"),
			Rooms: []room.ID{"r1"},
		})

		require.NoError(t, err)
		assert.False(t, view.Conflict)
		assert.Nil(t, view.BookingID)
	})

	t.Run("excluded booking and own session are ignored", func(t *testing.T) {
		m := newStoreMocks(t)
		session := uuid.New()
		expires := testNow.Add(time.Hour)
		hold := builder.NewBookingBuilder().WithRooms("r1").WithDates("2025-07-01", "2025-07-10").
			AsProposed(session, &expires).MustBuild(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r1")).Return([]*booking.Booking{stay, hold}, nil)

		view, err := m.conflicts().Check(ctx, queries.ConflictCheckInput{
			Range:            calendar.MustRange("2025-07-04", "2025-07-05"),
			Rooms:            []room.ID{"r1"},
			ExcludeBookingID: stay.ID(),
			SessionToken:     session,
		})

		require.NoError(t, err)
		assert.False(t, view.Conflict)
	})

	t.Run("per-room dates", func(t *testing.T) {
		m := newStoreMocks(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r1"), room.ID("r2")).Return([]*booking.Booking{stay}, nil)

		view, err := m.conflicts().Check(ctx, queries.ConflictCheckInput{
			Range: calendar.MustRange("2025-07-01", "2025-07-03"),
			Rooms: []room.ID{"r1", "r2"},
			RoomRanges: map[room.ID]calendar.DateRange{
				"r2": calendar.MustRange("2025-07-01", "2025-07-04"),
			},
		})

		require.NoError(t, err)
		assert.True(t, view.Conflict)
		assert.Equal(t, room.ID("r2"), view.Room)
	})

	t.Run("bulk checks every room", func(t *testing.T) {
		m := newStoreMocks(t)
		blocked := builder.NewBookingBuilder().WithRooms("r3").WithDates("2025-07-01", "2025-07-02").AsBlocked().MustBuild(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r1"), room.ID("r2"), room.ID("r3")).
			Return([]*booking.Booking{blocked}, nil)

		view, err := m.conflicts().Check(ctx, queries.ConflictCheckInput{
			Range: calendar.MustRange("2025-07-01", "2025-07-03"),
			Bulk:  true,
		})

		require.NoError(t, err)
		assert.True(t, view.Conflict)
		assert.Equal(t, "blocked", view.Status)
	})

	t.Run("no rooms", func(t *testing.T) {
		m := newStoreMocks(t)
		_, err := m.conflicts().Check(ctx, queries.ConflictCheckInput{Range: calendar.MustRange("2025-07-01", "2025-07-03")})
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	})
}
