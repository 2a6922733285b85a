package selection

import (
	"lodge-booking/internal/domain/calendar"
	"lodge-booking/internal/pkg/errs"
)

var ErrValidationRejected = errs.New("selected dates are not available")

// Step is the outcome of a transition. Validate is set when the caller must check the
// span asynchronously and feed the outcome back through Resolve.
type Step struct {
	State    State
	Changed  bool
	Validate *calendar.DateRange
	Err      error
}

func Click(s State, d calendar.Date) Step {
	switch s.kind {
	case KindIdle, KindCommitted:
		return Step{State: Anchored(d), Changed: true}
	case KindAnchored:
		span := calendar.Span(s.anchor, d)
		return Step{State: s, Validate: &span}
	default:
		return Step{State: Anchored(d), Changed: true}
	}
}

// Hover returns the preview span while anchored.
func Hover(s State, d calendar.Date) (calendar.DateRange, bool) {
	if s.kind != KindAnchored {
		return calendar.DateRange{}, false
	}
	return calendar.Span(s.anchor, d), true
}

// Resolve applies the outcome of validating span. Any error, a rejection or a failed
// lookup, drops back to Idle. Outcomes that no longer match the anchored state leave it
// untouched.
func Resolve(s State, span calendar.DateRange, outcome error) Step {
	if s.kind != KindAnchored || !span.Contains(s.anchor) {
		return Step{State: s}
	}
	if outcome != nil {
		return Step{State: Idle(), Changed: true, Err: outcome}
	}
	return Step{State: Committed(span), Changed: true}
}

func Reset(s State) Step {
	return Step{State: Idle(), Changed: s.kind != KindIdle}
}
