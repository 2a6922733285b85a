//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/tests/common/builder"
	usecasemock "lodge-booking/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func allRooms() []room.Room {
	return []room.Room{
		builder.MustRoom("r1", 2),
		builder.MustRoom("r2", 3),
		builder.MustRoom("r3", 6),
	}
}

type storeMocks struct {
	rooms    *usecasemock.MockRoomReader
	settings *usecasemock.MockSettingsReader
	avail    *usecasemock.MockAvailabilityReader
	bookings *usecasemock.MockBookingReader
}

func newStoreMocks(t *testing.T) storeMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := storeMocks{
		rooms:    usecasemock.NewMockRoomReader(ctrl),
		settings: usecasemock.NewMockSettingsReader(ctrl),
		avail:    usecasemock.NewMockAvailabilityReader(ctrl),
		bookings: usecasemock.NewMockBookingReader(ctrl),
	}
	m.rooms.EXPECT().ListRooms(gomock.Any()).Return(allRooms(), nil).AnyTimes()
	return m
}

func (m storeMocks) availability() queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(m.rooms, m.avail, m.bookings,
		availability.NewResolver(clock.NewMockClock(testNow)))
}

func statusesByDate(v *queries.MonthView) map[string]availability.Status {
	out := make(map[string]availability.Status, len(v.Days))
	for _, d := range v.Days {
		out[d.Date.String()] = d.Status
	}
	return out
}

func TestAvailabilityQueries_Month(t *testing.T) {
	ctx := context.Background()
	july := calendar.MonthOf(calendar.MustParseDate("2025-07-01"))

	t.Run("single room", func(t *testing.T) {
		m := newStoreMocks(t)
		stay := builder.NewBookingBuilder().WithRooms("r1").WithDates("2025-07-03", "2025-07-05").MustBuild(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r1")).Return([]*booking.Booking{stay}, nil)

		view, err := m.availability().Month(ctx, fsm.Surface{Room: "r1", Month: july})

		require.NoError(t, err)
		assert.Equal(t, "2025-07", view.Month)
		assert.Len(t, view.Days, 31)
		got := statusesByDate(view)
		assert.Equal(t, availability.StatusAvailable, got["2025-07-02"])
		assert.Equal(t, availability.StatusEdge, got["2025-07-03"])
		assert.Equal(t, availability.StatusOccupied, got["2025-07-04"])
		assert.Equal(t, availability.StatusEdge, got["2025-07-05"])
		assert.Equal(t, availability.StatusAvailable, got["2025-07-06"])
		assert.True(t, view.Days[2].Selectable, "edge days stay selectable")
		assert.False(t, view.Days[3].Selectable)
	})

	t.Run("whole property takes the worst room", func(t *testing.T) {
		m := newStoreMocks(t)
		blocked := builder.NewBookingBuilder().WithRooms("r3").WithDates("2025-07-10", "2025-07-12").AsBlocked().MustBuild(t)
		hold := builder.NewBookingBuilder().WithRooms("r2").WithDates("2025-07-10", "2025-07-12").
			AsProposed(uuid.New(), nil).MustBuild(t)
		m.bookings.EXPECT().ListBookings(gomock.Any()).Return([]*booking.Booking{blocked, hold}, nil)

		view, err := m.availability().Month(ctx, fsm.Surface{Month: july})

		require.NoError(t, err)
		assert.Empty(t, view.Room)
		assert.Equal(t, availability.StatusBlocked, statusesByDate(view)["2025-07-11"])
	})

	t.Run("unknown room", func(t *testing.T) {
		m := newStoreMocks(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := m.availability().Month(ctx, fsm.Surface{Room: "r9", Month: july})

		assert.ErrorIs(t, err, usecase.ErrRoomNotFound)
	})

	t.Run("bookings read fails", func(t *testing.T) {
		m := newStoreMocks(t)
		m.bookings.EXPECT().ListBookings(gomock.Any(), room.ID("r1")).Return(nil, errs.New("timeout"))

		_, err := m.availability().Month(ctx, fsm.Surface{Room: "r1", Month: july})

		assert.ErrorIs(t, err, usecase.ErrRepositoryFailed)
	})
}

func TestAvailabilityQueries_PropertyDay(t *testing.T) {
	m := newStoreMocks(t)
	date := calendar.MustParseDate("2025-07-10")
	m.avail.EXPECT().GetRoomAvailability(gomock.Any(), date, room.ID("r1"), gomock.Any()).Return(availability.StatusAvailable, nil)
	m.avail.EXPECT().GetRoomAvailability(gomock.Any(), date, room.ID("r2"), gomock.Any()).Return(availability.StatusEdge, nil)
	m.avail.EXPECT().GetRoomAvailability(gomock.Any(), date, room.ID("r3"), gomock.Any()).Return(availability.StatusProposed, nil)

	view, err := m.availability().PropertyDay(context.Background(), date, availability.Exclusion{})

	require.NoError(t, err)
	assert.Equal(t, availability.StatusProposed, view.Status)
	assert.False(t, view.Selectable)
	require.Len(t, view.Rooms, 3)
	assert.Equal(t, room.ID("r2"), view.Rooms[1].Room)
	assert.Equal(t, availability.StatusEdge, view.Rooms[1].Status)
}

func TestAvailabilityQueries_RoomDay(t *testing.T) {
	date := calendar.MustParseDate("2025-07-10")

	t.Run("passes the exclusion through", func(t *testing.T) {
		m := newStoreMocks(t)
		excl := availability.Exclusion{BookingID: builder.NewBookingBuilder().MustBuild(t).ID()}
		m.avail.EXPECT().GetRoomAvailability(gomock.Any(), date, room.ID("r1"), excl).Return(availability.StatusAvailable, nil)

		view, err := m.availability().RoomDay(context.Background(), "r1", date, excl)

		require.NoError(t, err)
		assert.Equal(t, room.ID("r1"), view.Room)
		assert.True(t, view.Selectable)
	})

	t.Run("unknown room", func(t *testing.T) {
		m := newStoreMocks(t)

		_, err := m.availability().RoomDay(context.Background(), "r9", date, availability.Exclusion{})

		assert.ErrorIs(t, err, usecase.ErrRoomNotFound)
	})
}
