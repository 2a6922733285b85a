// Package selection models two-click range selection as a value-typed state machine.
// Transitions are pure; the asynchronous validation they request is run by the caller.
package selection

import (
	"fmt"

	"lodge-booking/internal/domain/calendar"
)

type Kind uint8

const (
	KindIdle Kind = iota
	KindAnchored
	KindCommitted
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindAnchored:
		return "anchored"
	case KindCommitted:
		return "committed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// State is Idle, Anchored{anchor} or Committed{range}. The zero value is Idle.
type State struct {
	kind   Kind
	anchor calendar.Date
	rng    calendar.DateRange
}

func Idle() State { return State{} }

func Anchored(anchor calendar.Date) State {
	return State{kind: KindAnchored, anchor: anchor}
}

func Committed(r calendar.DateRange) State {
	return State{kind: KindCommitted, rng: r}
}

func (s State) Kind() Kind { return s.kind }

func (s State) Anchor() (calendar.Date, bool) {
	return s.anchor, s.kind == KindAnchored
}

func (s State) Range() (calendar.DateRange, bool) {
	return s.rng, s.kind == KindCommitted
}

// Selection is what the surface highlights: the anchor day, the committed span, or nothing.
func (s State) Selection() *calendar.DateRange {
	switch s.kind {
	case KindIdle:
		return nil
	case KindAnchored:
		r := calendar.Span(s.anchor, s.anchor)
		return &r
	case KindCommitted:
		r := s.rng
		return &r
	default:
		return nil
	}
}

func (s State) String() string {
	switch s.kind {
	case KindIdle:
		return "idle"
	case KindAnchored:
		return "anchored(" + s.anchor.String() + ")"
	case KindCommitted:
		return "committed(" + s.rng.String() + ")"
	default:
		return s.kind.String()
	}
}
