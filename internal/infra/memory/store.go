// Package memory is an in-process store for local runs and tests. It honors the same
// write-time overlap check as the Postgres store.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"slices"
	"sync"

	"lodge-booking/internal/domain/availability"
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/conflict"
	"lodge-booking/internal/domain/pricing"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/infra"
	"lodge-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Store struct {
	resolver *availability.Resolver
	detector *conflict.Detector

	mu       sync.RWMutex
	settings *pricing.Settings
	bookings []*booking.Booking
}

func NewStore(resolver *availability.Resolver, detector *conflict.Detector) *Store {
	return &Store{resolver: resolver, detector: detector}
}

func (s *Store) PutSettings(settings pricing.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
}

// PutBooking stores b as is, replacing a booking with the same id. No overlap check is
// made; it is meant for seeding.
func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = slices.DeleteFunc(s.bookings, func(x *booking.Booking) bool { return x.ID() == b.ID() })
	s.bookings = append(s.bookings, b)
}

func (s *Store) GetSettings(ctx context.Context) (pricing.Settings, error) {
	if err := ctx.Err(); err != nil {
		return pricing.Settings{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return pricing.Settings{}, infra.WrapRepoErr("settings not found", nil, infra.KindNotFound)
	}
	return *s.settings, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]room.Room, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := settings.RoomList()
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room list in settings", err, infra.KindCorruptRow)
	}
	return rooms, nil
}

func (s *Store) ListBookings(ctx context.Context, roomIDs ...room.ID) ([]*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(roomIDs), nil
}

func (s *Store) FindBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.bookings, func(b *booking.Booking) bool { return b.ID() == id })
	if i < 0 {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return s.bookings[i], nil
}

func (s *Store) GetRoomAvailability(ctx context.Context, date calendar.Date, roomID room.ID, excl availability.Exclusion) (availability.Status, error) {
	bookings, err := s.ListBookings(ctx, roomID)
	if err != nil {
		return 0, err
	}
	return s.resolver.ResolveRoom(date, roomID, bookings, excl), nil
}

func (s *Store) SaveHold(ctx context.Context, hold *booking.Booking, excludeBookingID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if hold.Status() != booking.StatusProposed {
		return errs.Newf("save hold: booking %s has status %s", hold.ID(), hold.Status())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := slices.DeleteFunc(slices.Clone(s.bookings), func(b *booking.Booking) bool {
		return b.OwnedBy(hold.SessionToken())
	})
	if slices.ContainsFunc(kept, func(b *booking.Booking) bool { return b.ID() == hold.ID() }) {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	others := slices.DeleteFunc(slices.Clone(kept), func(b *booking.Booking) bool {
		return !b.Status().HoldsNights() || !b.SharesRoom(hold.Rooms())
	})
	if err := s.detector.Detect(conflict.CandidateFor(hold), others, excludeBookingID).Err(); err != nil {
		return err
	}

	s.bookings = append(kept, hold)
	return nil
}

func (s *Store) listLocked(roomIDs []room.ID) []*booking.Booking {
	out := make([]*booking.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if !b.Status().HoldsNights() {
			continue
		}
		if len(roomIDs) > 0 && !b.SharesRoom(roomIDs) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Seed is the JSON document accepted by LoadSeed.
type Seed struct {
	Settings pricing.Settings `json:"settings"`
	Bookings []SeedBooking    `json:"bookings"`
}

type SeedBooking struct {
	ID           uuid.UUID                        `json:"id"`
	Status       booking.Status                   `json:"status"`
	Rooms        []room.ID                        `json:"rooms"`
	Dates        calendar.DateRange               `json:"dates"`
	Overrides    map[room.ID]booking.RoomOverride `json:"overrides,omitempty"`
	Guests       booking.GuestComposition         `json:"guests"`
	Bulk         bool                             `json:"bulk,omitempty"`
	TotalPrice   int64                            `json:"totalPrice"`
	SessionToken uuid.UUID                        `json:"sessionToken,omitempty"`
}

func (s *Store) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrapf(err, "read seed %s", path)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return errs.Wrapf(err, "decode seed %s", path)
	}
	return s.ApplySeed(seed)
}

func (s *Store) ApplySeed(seed Seed) error {
	if _, err := seed.Settings.RoomList(); err != nil {
		return errs.Wrap(err, "seed settings")
	}
	bookings := make([]*booking.Booking, 0, len(seed.Bookings))
	for i, sb := range seed.Bookings {
		b, err := booking.New(booking.Params{
			ID:           sb.ID,
			Status:       sb.Status,
			Rooms:        sb.Rooms,
			Dates:        sb.Dates,
			Overrides:    sb.Overrides,
			Guests:       sb.Guests,
			Bulk:         sb.Bulk,
			TotalPrice:   sb.TotalPrice,
			SessionToken: sb.SessionToken,
		})
		if err != nil {
			return errs.Wrapf(err, "seed booking #%d", i)
		}
		bookings = append(bookings, b)
	}

	s.PutSettings(seed.Settings)
	for _, b := range bookings {
		s.PutBooking(b)
	}
	return nil
}
