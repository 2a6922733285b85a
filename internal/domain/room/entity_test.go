//go:build unit

package room_test

import (
	"testing"

	"lodge-booking/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	t.Run("tier derives from capacity", func(t *testing.T) {
		cases := []struct {
			beds, largeFrom int
			want            room.SizeTier
		}{
			{beds: 2, largeFrom: 0, want: room.TierSmall},
			{beds: 3, largeFrom: 0, want: room.TierSmall},
			{beds: 4, largeFrom: 0, want: room.TierLarge},
			{beds: 6, largeFrom: 0, want: room.TierLarge},
			{beds: 4, largeFrom: 5, want: room.TierSmall},
			{beds: 5, largeFrom: 5, want: room.TierLarge},
		}
		for _, c := range cases {
			r, err := room.NewRoom("r1", "Room 1", c.beds, c.largeFrom)
			require.NoError(t, err)
			assert.Equal(t, c.want, r.Tier(), "beds=%d largeFrom=%d", c.beds, c.largeFrom)
		}
	})

	t.Run("name defaults to id", func(t *testing.T) {
		r, err := room.NewRoom("attic", "  ", 2, 0)
		require.NoError(t, err)
		assert.Equal(t, "attic", r.Name())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := room.NewRoom("", "x", 2, 0)
		assert.ErrorIs(t, err, room.ErrEmptyRoomID)

		_, err = room.NewRoom("r1", "x", 0, 0)
		assert.ErrorIs(t, err, room.ErrInvalidCapacity)
	})

	t.Run("tier can be pinned", func(t *testing.T) {
		r, err := room.NewRoom("r1", "x", 2, 0)
		require.NoError(t, err)

		pinned, err := r.WithTier(room.TierLarge)
		require.NoError(t, err)
		assert.Equal(t, room.TierLarge, pinned.Tier())
		assert.Equal(t, room.TierSmall, r.Tier(), "original value untouched")

		_, err = r.WithTier("huge")
		assert.ErrorIs(t, err, room.ErrInvalidTier)
	})
}

func TestParseSizeTier(t *testing.T) {
	tier, err := room.ParseSizeTier(" Large ")
	require.NoError(t, err)
	assert.Equal(t, room.TierLarge, tier)

	_, err = room.ParseSizeTier("medium")
	assert.ErrorIs(t, err, room.ErrInvalidTier)
}
