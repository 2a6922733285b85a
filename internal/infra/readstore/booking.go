package readstore

import (
	"context"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/infra/converter"
	"lodge-booking/internal/infra/db"
	"lodge-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Canceled bookings never take nights, so they are not read at all.
var (
	listBookingsSQL = `SELECT ` + converter.BookingColumns + `
FROM bookings
WHERE status <> 'canceled'
  AND (cardinality($1::text[]) = 0 OR rooms && $1::text[])
ORDER BY start_date, created_at, id`

	findBookingSQL = `SELECT ` + converter.BookingColumns + `
FROM bookings
WHERE id = $1`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) ListBookings(ctx context.Context, roomIDs ...room.ID) ([]*booking.Booking, error) {
	return ListBookings(ctx, r.db, roomIDs...)
}

func (r *BookingReadStore) FindBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	rows, err := r.db.Query(ctx, findBookingSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt booking row "+row.ID.String(), err, infra.KindCorruptRow)
	}
	return b, nil
}

// ListBookings runs on any DBTX so the hold writer can read inside its transaction.
func ListBookings(ctx context.Context, q db.DBTX, roomIDs ...room.ID) ([]*booking.Booking, error) {
	rows, err := q.Query(ctx, listBookingsSQL, converter.RoomIDStrings(roomIDs))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.BookingRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}

	out := make([]*booking.Booking, 0, len(records))
	for _, row := range records {
		b, err := converter.BookingToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt booking row "+row.ID.String(), err, infra.KindCorruptRow)
		}
		out = append(out, b)
	}
	return out, nil
}
