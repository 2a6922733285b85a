//go:build unit

package memory_test

import (
	"context"
	"testing"
	"time"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/infra/memory"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*memory.Store, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(testNow)
	s := memory.NewStore(availability.NewResolver(clk), conflict.NewDetector(clk))
	require.NoError(t, s.LoadSeed("testdata/seed.json"))
	return s, clk
}

func TestStore_LoadSeed(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, []room.ID{"r1", "r2", "r3"}, room.IDs(rooms))
	assert.Equal(t, room.TierLarge, rooms[2].Tier())

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	rates, err := settings.TierRates(booking.AffiliationExternal, room.TierSmall)
	require.NoError(t, err)
	assert.Equal(t, int64(350), rates.Empty, "legacy base minus adult surcharge")
	assert.JSONEq(t, `{"start":"2025-12-23","end":"2026-01-02"}`, string(settings.ChristmasPeriod))

	all, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "canceled booking is not listed")

	r1, err := s.ListBookings(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, r1, 1)
	assert.Equal(t, booking.StatusConfirmed, r1[0].Status())
}

func TestStore_LoadSeedMissingFile(t *testing.T) {
	clk := clock.NewMockClock(testNow)
	s := memory.NewStore(availability.NewResolver(clk), conflict.NewDetector(clk))

	require.Error(t, s.LoadSeed("testdata/missing.json"))

	_, err := s.GetSettings(context.Background())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestStore_GetRoomAvailability(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	cases := []struct {
		room room.ID
		day  string
		want availability.Status
	}{
		{"r1", "2025-06-30", availability.StatusAvailable},
		{"r1", "2025-07-01", availability.StatusEdge},
		{"r1", "2025-07-02", availability.StatusOccupied},
		{"r1", "2025-07-04", availability.StatusEdge},
		{"r3", "2025-07-11", availability.StatusBlocked},
		{"r2", "2025-07-03", availability.StatusAvailable},
	}
	for _, tc := range cases {
		got, err := s.GetRoomAvailability(ctx, calendar.MustParseDate(tc.day), tc.room, availability.Exclusion{})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.room, tc.day)
	}
}

func TestStore_FindBooking(t *testing.T) {
	s, _ := newStore(t)

	b, err := s.FindBooking(context.Background(), uuid.MustParse("6f1c2a4e-6a55-4c55-9a43-3b0c3c1e0a01"))
	require.NoError(t, err)
	assert.Equal(t, int64(1050), b.TotalPrice())

	_, err = s.FindBooking(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestStore_SaveHold(t *testing.T) {
	ctx := context.Background()
	expires := testNow.Add(15 * time.Minute)

	t.Run("back-to-back hold is stored", func(t *testing.T) {
		s, _ := newStore(t)
		hold := builder.NewBookingBuilder().
			WithRooms("r1").WithDates("2025-07-04", "2025-07-06").
			AsProposed(uuid.New(), &expires).MustBuild(t)

		require.NoError(t, s.SaveHold(ctx, hold, uuid.Nil))

		st, err := s.GetRoomAvailability(ctx, calendar.MustParseDate("2025-07-05"), "r1", availability.Exclusion{})
		require.NoError(t, err)
		assert.Equal(t, availability.StatusProposed, st)
	})

	t.Run("overlapping hold is rejected", func(t *testing.T) {
		s, _ := newStore(t)
		hold := builder.NewBookingBuilder().
			WithRooms("r1", "r2").WithDates("2025-07-03", "2025-07-06").
			AsProposed(uuid.New(), &expires).MustBuild(t)

		err := s.SaveHold(ctx, hold, uuid.Nil)
		require.ErrorIs(t, err, conflict.ErrConflictDetected)

		var ce *conflict.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, room.ID("r1"), ce.Room)
	})

	t.Run("excluded booking does not conflict", func(t *testing.T) {
		s, _ := newStore(t)
		hold := builder.NewBookingBuilder().
			WithRooms("r1").WithDates("2025-07-02", "2025-07-05").
			AsProposed(uuid.New(), &expires).MustBuild(t)

		require.NoError(t, s.SaveHold(ctx, hold, uuid.MustParse("6f1c2a4e-6a55-4c55-9a43-3b0c3c1e0a01")))
	})

	t.Run("a new hold replaces the session's earlier hold", func(t *testing.T) {
		s, _ := newStore(t)
		session := uuid.New()
		first := builder.NewBookingBuilder().
			WithRooms("r2").WithDates("2025-08-01", "2025-08-05").
			AsProposed(session, &expires).MustBuild(t)
		second := builder.NewBookingBuilder().
			WithRooms("r2").WithDates("2025-08-03", "2025-08-07").
			AsProposed(session, &expires).MustBuild(t)

		require.NoError(t, s.SaveHold(ctx, first, uuid.Nil))
		require.NoError(t, s.SaveHold(ctx, second, uuid.Nil))

		r2, err := s.ListBookings(ctx, "r2")
		require.NoError(t, err)
		require.Len(t, r2, 1)
		assert.Equal(t, second.ID(), r2[0].ID())
	})

	t.Run("another session's expired hold does not block", func(t *testing.T) {
		s, clk := newStore(t)
		stale := builder.NewBookingBuilder().
			WithRooms("r2").WithDates("2025-08-01", "2025-08-05").
			AsProposed(uuid.New(), &expires).MustBuild(t)
		require.NoError(t, s.SaveHold(ctx, stale, uuid.Nil))

		clk.Add(time.Hour)
		later := testNow.Add(2 * time.Hour)
		fresh := builder.NewBookingBuilder().
			WithRooms("r2").WithDates("2025-08-02", "2025-08-04").
			AsProposed(uuid.New(), &later).MustBuild(t)
		require.NoError(t, s.SaveHold(ctx, fresh, uuid.Nil))
	})

	t.Run("only proposed bookings are accepted", func(t *testing.T) {
		s, _ := newStore(t)
		confirmed := builder.NewBookingBuilder().WithDates("2025-09-01", "2025-09-02").MustBuild(t)
		assert.Error(t, s.SaveHold(ctx, confirmed, uuid.Nil))
	})
}

func TestStore_ContextCanceled(t *testing.T) {
	s, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListBookings(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
