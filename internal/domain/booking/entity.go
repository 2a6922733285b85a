package booking

import (
	"slices"
	"time"

	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoRooms          = errs.New("booking must reference at least one room")
	ErrUnknownOverride  = errs.New("room override references a room outside the booking")
	ErrNegativePrice    = errs.New("price cannot be negative")
	ErrHoldWithoutOwner = errs.New("proposed hold requires a session token")
)

// RoomOverride replaces the booking-level dates and/or guests for one room.
type RoomOverride struct {
	Dates  *calendar.DateRange `json:"dates,omitempty"`
	Guests *GuestComposition   `json:"guests,omitempty"`
}

type Params struct {
	ID           uuid.UUID
	Status       Status
	Rooms        []room.ID
	Dates        calendar.DateRange
	Overrides    map[room.ID]RoomOverride
	Guests       GuestComposition
	Bulk         bool
	TotalPrice   int64
	SessionToken uuid.UUID
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}

// Booking is read-only to the engine; it is created by the external booking flow.
type Booking struct {
	id           uuid.UUID
	status       Status
	rooms        []room.ID
	dates        calendar.DateRange
	overrides    map[room.ID]RoomOverride
	guests       GuestComposition
	bulk         bool
	totalPrice   int64
	sessionToken uuid.UUID
	expiresAt    *time.Time
	createdAt    time.Time
}

func New(p Params) (*Booking, error) {
	if !p.Status.IsValid() {
		return nil, errs.Mark(errs.Newf("status %q", p.Status), ErrInvalidStatus)
	}
	if len(p.Rooms) == 0 {
		return nil, ErrNoRooms
	}
	if err := p.Dates.Validate(); err != nil {
		return nil, err
	}
	if p.TotalPrice < 0 {
		return nil, ErrNegativePrice
	}
	if p.Status == StatusProposed && p.SessionToken == uuid.Nil {
		return nil, ErrHoldWithoutOwner
	}

	rooms := slices.Clone(p.Rooms)
	overrides := make(map[room.ID]RoomOverride, len(p.Overrides))
	for id, o := range p.Overrides {
		if !slices.Contains(rooms, id) {
			return nil, errs.Mark(errs.Newf("override for room %s", id), ErrUnknownOverride)
		}
		if o.Dates != nil {
			if err := o.Dates.Validate(); err != nil {
				return nil, errs.Wrapf(err, "override for room %s", id)
			}
		}
		overrides[id] = o
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Booking{
		id:           id,
		status:       p.Status,
		rooms:        rooms,
		dates:        p.Dates,
		overrides:    overrides,
		guests:       p.Guests,
		bulk:         p.Bulk,
		totalPrice:   p.TotalPrice,
		sessionToken: p.SessionToken,
		expiresAt:    p.ExpiresAt,
		createdAt:    p.CreatedAt,
	}, nil
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) Rooms() []room.ID          { return slices.Clone(b.rooms) }
func (b *Booking) Dates() calendar.DateRange { return b.dates }
func (b *Booking) Guests() GuestComposition  { return b.guests }
func (b *Booking) IsBulk() bool              { return b.bulk }
func (b *Booking) TotalPrice() int64         { return b.totalPrice }
func (b *Booking) SessionToken() uuid.UUID   { return b.sessionToken }
func (b *Booking) ExpiresAt() *time.Time     { return b.expiresAt }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }

func (b *Booking) Override(id room.ID) (RoomOverride, bool) {
	o, ok := b.overrides[id]
	return o, ok
}

func (b *Booking) HasRoom(id room.ID) bool {
	return slices.Contains(b.rooms, id)
}

// SharesRoom reports whether any of ids belongs to the booking.
func (b *Booking) SharesRoom(ids []room.ID) bool {
	for _, id := range ids {
		if b.HasRoom(id) {
			return true
		}
	}
	return false
}

// EffectiveRange is the room's own override range, else the booking range.
func (b *Booking) EffectiveRange(id room.ID) calendar.DateRange {
	if o, ok := b.overrides[id]; ok && o.Dates != nil {
		return *o.Dates
	}
	return b.dates
}

// EffectiveGuests is the room's own override composition, else the booking composition.
func (b *Booking) EffectiveGuests(id room.ID) (GuestComposition, bool) {
	if o, ok := b.overrides[id]; ok && o.Guests != nil {
		return *o.Guests, true
	}
	return b.guests, false
}

// IsExpired is true for a proposed hold whose expiry has passed.
func (b *Booking) IsExpired(now time.Time) bool {
	if b.status != StatusProposed || b.expiresAt == nil || now.IsZero() {
		return false
	}
	return !now.Before(*b.expiresAt)
}

// HoldsNights reports whether the booking currently takes nights from other stays.
func (b *Booking) HoldsNights(now time.Time) bool {
	return b.status.HoldsNights() && !b.IsExpired(now)
}

// OccupiesNight reports whether the booking holds the night starting on night in room id.
func (b *Booking) OccupiesNight(id room.ID, night calendar.Date, now time.Time) bool {
	if !b.HasRoom(id) || !b.HoldsNights(now) {
		return false
	}
	return b.EffectiveRange(id).OccupiesNight(night)
}

// OwnedBy reports whether the booking is a hold created by the given session.
func (b *Booking) OwnedBy(token uuid.UUID) bool {
	return token != uuid.Nil && b.status == StatusProposed && b.sessionToken == token
}
