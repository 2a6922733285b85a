package converter

import (
	"encoding/json"
	"time"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns matches the field order of BookingRow.
const BookingColumns = `id, status, rooms, start_date, end_date, guests, overrides, bulk,
	total_price, session_token, expires_at, created_at`

type BookingRow struct {
	ID           uuid.UUID          `db:"id"`
	Status       string             `db:"status"`
	Rooms        []string           `db:"rooms"`
	StartDate    pgtype.Date        `db:"start_date"`
	EndDate      pgtype.Date        `db:"end_date"`
	Guests       []byte             `db:"guests"`
	Overrides    []byte             `db:"overrides"`
	Bulk         bool               `db:"bulk"`
	TotalPrice   int64              `db:"total_price"`
	SessionToken pgtype.UUID        `db:"session_token"`
	ExpiresAt    pgtype.Timestamptz `db:"expires_at"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

func BookingToDomain(row BookingRow) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	start, err := pgconv.DateFromPgtype(row.StartDate)
	if err != nil {
		return nil, errs.Wrap(err, "start_date")
	}
	end, err := pgconv.DateFromPgtype(row.EndDate)
	if err != nil {
		return nil, errs.Wrap(err, "end_date")
	}
	dates, err := calendar.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	var guests booking.GuestComposition
	if len(row.Guests) > 0 {
		if err := json.Unmarshal(row.Guests, &guests); err != nil {
			return nil, errs.Wrap(err, "guests")
		}
	}
	var overrides map[room.ID]booking.RoomOverride
	if len(row.Overrides) > 0 {
		if err := json.Unmarshal(row.Overrides, &overrides); err != nil {
			return nil, errs.Wrap(err, "overrides")
		}
	}

	rooms := make([]room.ID, len(row.Rooms))
	for i, r := range row.Rooms {
		rooms[i] = room.ID(r)
	}

	return booking.New(booking.Params{
		ID:           row.ID,
		Status:       status,
		Rooms:        rooms,
		Dates:        dates,
		Overrides:    overrides,
		Guests:       guests,
		Bulk:         row.Bulk,
		TotalPrice:   row.TotalPrice,
		SessionToken: pgconv.UUIDFromPgtype(row.SessionToken),
		ExpiresAt:    pgconv.TimePtrFromPgtype(row.ExpiresAt),
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
	})
}

// BookingToRow is the inverse of BookingToDomain.
func BookingToRow(b *booking.Booking) (BookingRow, error) {
	guests, err := json.Marshal(b.Guests())
	if err != nil {
		return BookingRow{}, errs.Wrap(err, "encode guests")
	}

	ids := b.Rooms()
	overrides := make(map[room.ID]booking.RoomOverride)
	rooms := make([]string, len(ids))
	for i, id := range ids {
		rooms[i] = string(id)
		if o, ok := b.Override(id); ok {
			overrides[id] = o
		}
	}
	encoded, err := json.Marshal(overrides)
	if err != nil {
		return BookingRow{}, errs.Wrap(err, "encode overrides")
	}

	createdAt := b.CreatedAt()
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return BookingRow{
		ID:           b.ID(),
		Status:       b.Status().String(),
		Rooms:        rooms,
		StartDate:    pgconv.DateToPgtype(b.Dates().Start),
		EndDate:      pgconv.DateToPgtype(b.Dates().End),
		Guests:       guests,
		Overrides:    encoded,
		Bulk:         b.IsBulk(),
		TotalPrice:   b.TotalPrice(),
		SessionToken: pgconv.UUIDToPgtype(b.SessionToken()),
		ExpiresAt:    pgconv.TimePtrToPgtype(b.ExpiresAt()),
		CreatedAt:    pgconv.TimeToPgtype(createdAt),
	}, nil
}

func RoomIDStrings(ids []room.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
