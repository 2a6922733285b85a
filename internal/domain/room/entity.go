package room

import (
	"strings"

	"lodge-booking/internal/pkg/errs"
)

var (
	ErrEmptyRoomID     = errs.New("room id cannot be empty")
	ErrInvalidCapacity = errs.New("room bed capacity must be positive")
	ErrInvalidTier     = errs.New("invalid room size tier")
)

// DefaultLargeTierMinBeds is the bed count from which a room is priced as large.
const DefaultLargeTierMinBeds = 4

type ID string

func (id ID) String() string { return string(id) }

type SizeTier string

const (
	TierSmall SizeTier = "small"
	TierLarge SizeTier = "large"
)

func (t SizeTier) IsValid() bool {
	switch t {
	case TierSmall, TierLarge:
		return true
	default:
		return false
	}
}

func ParseSizeTier(s string) (SizeTier, error) {
	t := SizeTier(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", errs.Mark(errs.Newf("unknown tier %q", s), ErrInvalidTier)
	}
	return t, nil
}

// TierFor derives the size tier from a bed capacity. A non-positive threshold falls back
// to DefaultLargeTierMinBeds.
func TierFor(beds, largeFrom int) SizeTier {
	if largeFrom <= 0 {
		largeFrom = DefaultLargeTierMinBeds
	}
	if beds >= largeFrom {
		return TierLarge
	}
	return TierSmall
}

// Room is immutable reference data loaded from settings.
type Room struct {
	id   ID
	name string
	beds int
	tier SizeTier
}

func NewRoom(id ID, name string, beds, largeFrom int) (Room, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Room{}, ErrEmptyRoomID
	}
	if beds <= 0 {
		return Room{}, errs.Mark(errs.Newf("room %s has %d beds", id, beds), ErrInvalidCapacity)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(id)
	}
	return Room{id: id, name: name, beds: beds, tier: TierFor(beds, largeFrom)}, nil
}

// WithTier pins the tier explicitly, overriding the capacity-derived one.
func (r Room) WithTier(t SizeTier) (Room, error) {
	if !t.IsValid() {
		return Room{}, errs.Mark(errs.Newf("room %s: tier %q", r.id, t), ErrInvalidTier)
	}
	r.tier = t
	return r, nil
}

func (r Room) ID() ID         { return r.id }
func (r Room) Name() string   { return r.name }
func (r Room) Beds() int      { return r.beds }
func (r Room) Tier() SizeTier { return r.tier }
func (r Room) IsZero() bool   { return r.id == "" }

// IDs extracts room ids preserving order.
func IDs(rooms []Room) []ID {
	out := make([]ID, len(rooms))
	for i, r := range rooms {
		out[i] = r.id
	}
	return out
}

// Index maps rooms by id.
func Index(rooms []Room) map[ID]Room {
	out := make(map[ID]Room, len(rooms))
	for _, r := range rooms {
		out[r.id] = r
	}
	return out
}
