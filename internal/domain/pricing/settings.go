package pricing

import (
	"encoding/json"

	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/room"
	"lodge-booking/internal/pkg/errs"
)

// TierRates are nightly prices for one affiliation and room tier. Base is the legacy
// inclusive price (empty room plus one adult) used when Empty is absent.
type TierRates struct {
	Empty *int64 `json:"empty,omitempty"`
	Base  *int64 `json:"base,omitempty"`
	Adult *int64 `json:"adult,omitempty"`
	Child *int64 `json:"child,omitempty"`
}

type AffiliationRates struct {
	Small *TierRates `json:"small,omitempty"`
	Large *TierRates `json:"large,omitempty"`
}

type PriceTierConfig struct {
	Internal *AffiliationRates `json:"internal,omitempty"`
	External *AffiliationRates `json:"external,omitempty"`
}

type BulkSurcharges struct {
	Adult *int64 `json:"adult,omitempty"`
	Child *int64 `json:"child,omitempty"`
}

// BulkPriceConfig prices the whole property as one unit.
type BulkPriceConfig struct {
	Base     *int64          `json:"base,omitempty"`
	Internal *BulkSurcharges `json:"internal,omitempty"`
	External *BulkSurcharges `json:"external,omitempty"`
}

type RoomSetting struct {
	ID   room.ID       `json:"id"`
	Name string        `json:"name,omitempty"`
	Beds int           `json:"beds"`
	Tier room.SizeTier `json:"tier,omitempty"`
}

// Settings is the property configuration document. ChristmasPeriod is carried
// untouched for the surrounding booking flow.
type Settings struct {
	PriceTiers       *PriceTierConfig `json:"priceTiers,omitempty"`
	Bulk             *BulkPriceConfig `json:"bulk,omitempty"`
	Rooms            []RoomSetting    `json:"rooms,omitempty"`
	LargeRoomMinBeds int              `json:"largeRoomMinBeds,omitempty"`
	ChristmasPeriod  json.RawMessage  `json:"christmasPeriod,omitempty"`
}

// Rates is a fully resolved bracket.
type Rates struct {
	Empty int64
	Adult int64
	Child int64
}

func (r Rates) Surcharge(p booking.PersonType) int64 {
	switch p {
	case booking.PersonAdult:
		return r.Adult
	case booking.PersonChild:
		return r.Child
	case booking.PersonToddler:
		return 0
	default:
		return 0
	}
}

func (s Settings) LargeTierFrom() int {
	if s.LargeRoomMinBeds > 0 {
		return s.LargeRoomMinBeds
	}
	return room.DefaultLargeTierMinBeds
}

// RoomList builds rooms from the settings, honoring pinned tiers.
func (s Settings) RoomList() ([]room.Room, error) {
	out := make([]room.Room, 0, len(s.Rooms))
	for _, rs := range s.Rooms {
		r, err := room.NewRoom(rs.ID, rs.Name, rs.Beds, s.LargeTierFrom())
		if err != nil {
			return nil, errs.Wrapf(err, "settings room %q", rs.ID)
		}
		if rs.Tier != "" {
			if r, err = r.WithTier(rs.Tier); err != nil {
				return nil, errs.Wrapf(err, "settings room %q", rs.ID)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// TierRates resolves the bracket for affiliation a and tier t.
func (s Settings) TierRates(a booking.Affiliation, t room.SizeTier) (Rates, error) {
	path := "priceTiers." + string(a) + "." + string(t)
	if s.PriceTiers == nil {
		return Rates{}, missing("priceTiers")
	}

	var byTier *AffiliationRates
	switch a {
	case booking.AffiliationInternal:
		byTier = s.PriceTiers.Internal
	case booking.AffiliationExternal:
		byTier = s.PriceTiers.External
	default:
		return Rates{}, invalidInput("affiliation %q", a)
	}
	if byTier == nil {
		return Rates{}, missing("priceTiers." + string(a))
	}

	var tr *TierRates
	switch t {
	case room.TierSmall:
		tr = byTier.Small
	case room.TierLarge:
		tr = byTier.Large
	default:
		return Rates{}, invalidInput("room tier %q", t)
	}
	if tr == nil {
		return Rates{}, missing(path)
	}
	if tr.Adult == nil {
		return Rates{}, missing(path + ".adult")
	}
	if tr.Child == nil {
		return Rates{}, missing(path + ".child")
	}

	var empty int64
	switch {
	case tr.Empty != nil:
		empty = *tr.Empty
	case tr.Base != nil:
		empty = *tr.Base - *tr.Adult
	default:
		return Rates{}, missing(path + ".empty")
	}

	rates := Rates{Empty: empty, Adult: *tr.Adult, Child: *tr.Child}
	if rates.Empty < 0 || rates.Adult < 0 || rates.Child < 0 {
		return Rates{}, &ConfigurationError{Path: path, Reason: "negative rate"}
	}
	return rates, nil
}

// BulkRates returns the flat base and the surcharges for affiliation a.
func (s Settings) BulkRates(a booking.Affiliation) (base int64, surcharges Rates, err error) {
	if s.Bulk == nil {
		return 0, Rates{}, missing("bulk")
	}
	if s.Bulk.Base == nil {
		return 0, Rates{}, missing("bulk.base")
	}

	var sc *BulkSurcharges
	switch a {
	case booking.AffiliationInternal:
		sc = s.Bulk.Internal
	case booking.AffiliationExternal:
		sc = s.Bulk.External
	default:
		return 0, Rates{}, invalidInput("affiliation %q", a)
	}
	path := "bulk." + string(a)
	if sc == nil {
		return 0, Rates{}, missing(path)
	}
	if sc.Adult == nil {
		return 0, Rates{}, missing(path + ".adult")
	}
	if sc.Child == nil {
		return 0, Rates{}, missing(path + ".child")
	}
	if *s.Bulk.Base < 0 || *sc.Adult < 0 || *sc.Child < 0 {
		return 0, Rates{}, &ConfigurationError{Path: path, Reason: "negative rate"}
	}
	return *s.Bulk.Base, Rates{Adult: *sc.Adult, Child: *sc.Child}, nil
}

// Validate checks that every bracket can be resolved.
func (s Settings) Validate() error {
	for _, a := range []booking.Affiliation{booking.AffiliationInternal, booking.AffiliationExternal} {
		for _, t := range []room.SizeTier{room.TierSmall, room.TierLarge} {
			if _, err := s.TierRates(a, t); err != nil {
				return err
			}
		}
		if _, _, err := s.BulkRates(a); err != nil {
			return err
		}
	}
	if _, err := s.RoomList(); err != nil {
		return &ConfigurationError{Path: "rooms", Reason: err.Error()}
	}
	return nil
}
