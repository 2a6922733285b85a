//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertPriceLocation checks that a prepared draft points at its stored price breakdown.
func AssertPriceLocation(t *testing.T, w *httptest.ResponseRecorder, bookingID uuid.UUID) {
	t.Helper()
	assert.Equal(t, "/api/bookings/"+bookingID.String()+"/price", w.Header().Get("Location"))
}
