//go:build unit

package availability_test

import (
	"encoding/json"
	"testing"

	"lodge-booking/internal/domain/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	all := []availability.Status{
		availability.StatusAvailable,
		availability.StatusEdge,
		availability.StatusProposed,
		availability.StatusOccupied,
		availability.StatusBlocked,
	}

	for _, s := range all {
		parsed, err := availability.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	booked, err := availability.ParseStatus("booked")
	require.NoError(t, err)
	assert.Equal(t, availability.StatusOccupied, booked)

	_, err = availability.ParseStatus("maybe")
	assert.ErrorIs(t, err, availability.ErrUnknownStatus)

	assert.True(t, availability.StatusAvailable.IsSelectable())
	assert.True(t, availability.StatusEdge.IsSelectable())
	assert.False(t, availability.StatusProposed.IsSelectable())
	assert.False(t, availability.StatusOccupied.IsSelectable())
	assert.False(t, availability.StatusBlocked.IsSelectable())
	assert.False(t, availability.Status(0).IsSelectable())
}

func TestStatus_JSON(t *testing.T) {
	raw, err := json.Marshal(map[string]availability.Status{"s": availability.StatusBlocked})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"blocked"}`, string(raw))

	var got struct {
		S availability.Status `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"edge"}`), &got))
	assert.Equal(t, availability.StatusEdge, got.S)

	_, err = json.Marshal(availability.Status(0))
	assert.Error(t, err)
}
