package booking

import (
	"strings"

	"lodge-booking/internal/pkg/errs"
)

var (
	ErrInvalidAffiliation = errs.New("invalid guest affiliation")
	ErrInvalidPersonType  = errs.New("invalid guest person type")
	ErrNegativeGuestCount = errs.New("guest counts cannot be negative")
)

// Affiliation selects the price bracket and surcharge rates a guest pays.
type Affiliation string

const (
	AffiliationInternal Affiliation = "internal"
	AffiliationExternal Affiliation = "external"
)

func (a Affiliation) IsValid() bool {
	switch a {
	case AffiliationInternal, AffiliationExternal:
		return true
	default:
		return false
	}
}

func ParseAffiliation(s string) (Affiliation, error) {
	a := Affiliation(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", errs.Mark(errs.Newf("unknown affiliation %q", s), ErrInvalidAffiliation)
	}
	return a, nil
}

type PersonType string

const (
	PersonAdult   PersonType = "adult"
	PersonChild   PersonType = "child"
	PersonToddler PersonType = "toddler"
)

func (p PersonType) IsValid() bool {
	switch p {
	case PersonAdult, PersonChild, PersonToddler:
		return true
	default:
		return false
	}
}

type Guest struct {
	Name        string      `json:"name"`
	Type        PersonType  `json:"type"`
	Affiliation Affiliation `json:"affiliation"`
}

func (g Guest) Validate() error {
	if !g.Type.IsValid() {
		return errs.Mark(errs.Newf("guest %q: type %q", g.Name, g.Type), ErrInvalidPersonType)
	}
	if !g.Affiliation.IsValid() {
		return errs.Mark(errs.Newf("guest %q: affiliation %q", g.Name, g.Affiliation), ErrInvalidAffiliation)
	}
	return nil
}

// GuestComposition describes who stays. A non-empty Roster supersedes the aggregate
// counts for pricing.
type GuestComposition struct {
	Adults      int         `json:"adults"`
	Children    int         `json:"children"`
	Toddlers    int         `json:"toddlers"`
	Affiliation Affiliation `json:"affiliation"`
	Roster      []Guest     `json:"roster,omitempty"`
}

func (g GuestComposition) HasRoster() bool {
	return len(g.Roster) > 0
}

func (g GuestComposition) Validate() error {
	if g.HasRoster() {
		for _, guest := range g.Roster {
			if err := guest.Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	if g.Adults < 0 || g.Children < 0 || g.Toddlers < 0 {
		return ErrNegativeGuestCount
	}
	if g.Total() > 0 && !g.Affiliation.IsValid() {
		return errs.Mark(errs.Newf("affiliation %q", g.Affiliation), ErrInvalidAffiliation)
	}
	return nil
}

// Counts returns adults, children and toddlers, taken from the roster when one is present.
func (g GuestComposition) Counts() (adults, children, toddlers int) {
	if !g.HasRoster() {
		return g.Adults, g.Children, g.Toddlers
	}
	for _, guest := range g.Roster {
		switch guest.Type {
		case PersonAdult:
			adults++
		case PersonChild:
			children++
		case PersonToddler:
			toddlers++
		}
	}
	return adults, children, toddlers
}

func (g GuestComposition) Total() int {
	a, c, t := g.Counts()
	return a + c + t
}

// Guests expands the composition into individual guests. Without a roster every guest
// carries the composition's affiliation.
func (g GuestComposition) Guests() []Guest {
	if g.HasRoster() {
		return append([]Guest(nil), g.Roster...)
	}
	out := make([]Guest, 0, g.Total())
	for range g.Adults {
		out = append(out, Guest{Type: PersonAdult, Affiliation: g.Affiliation})
	}
	for range g.Children {
		out = append(out, Guest{Type: PersonChild, Affiliation: g.Affiliation})
	}
	for range g.Toddlers {
		out = append(out, Guest{Type: PersonToddler, Affiliation: g.Affiliation})
	}
	return out
}
