package readstore

import (
	"context"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/infra/db"
)

// AvailabilityReadStore resolves a room's day from the room's bookings. Per-room override
// ranges are not indexed, so the window is not narrowed in SQL.
type AvailabilityReadStore struct {
	db       db.DBTX
	resolver *availability.Resolver
}

func NewAvailabilityReadStore(db db.DBTX, resolver *availability.Resolver) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: db, resolver: resolver}
}

func (r *AvailabilityReadStore) GetRoomAvailability(ctx context.Context, date calendar.Date, roomID room.ID, excl availability.Exclusion) (availability.Status, error) {
	bookings, err := ListBookings(ctx, r.db, roomID)
	if err != nil {
		return 0, err
	}
	return r.resolver.ResolveRoom(date, roomID, bookings, excl), nil
}
