//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/infra/converter"
	"lodge-booking/tests/common/builder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const insertBookingSQL = `INSERT INTO bookings (` + converter.BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// InsertBooking stores b as is, bypassing the hold conflict check, so tests can set up
// confirmed and blocked bookings.
func InsertBooking(t *testing.T, db DBLike, b *booking.Booking) {
	t.Helper()

	row, err := converter.BookingToRow(b)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), insertBookingSQL,
		row.ID, row.Status, row.Rooms, row.StartDate, row.EndDate, row.Guests, row.Overrides,
		row.Bulk, row.TotalPrice, row.SessionToken, row.ExpiresAt, row.CreatedAt)
	require.NoError(t, err)
}

// PutSettings replaces the settings document.
func PutSettings(t *testing.T, db DBLike, s pricing.Settings) {
	t.Helper()
	require.NoError(t, upsertSettings(context.Background(), db, s))
}

func CountBookings(t *testing.T, db DBLike, status booking.Status) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings WHERE status = $1", string(status)).Scan(&n)
	require.NoError(t, err)
	return n
}

// SeedReferenceData stores the default settings document from builder.NewSettingsBuilder.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return upsertSettings(ctx, pool, builder.NewSettingsBuilder().Build())
}

func upsertSettings(ctx context.Context, db DBLike, s pricing.Settings) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		INSERT INTO settings (id, document) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`, doc)
	return err
}

// ResetDB removes every booking and restores the default settings.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE bookings"); err != nil {
		return err
	}
	return SeedReferenceData(pool)
}
