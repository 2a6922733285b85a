package availability

import (
	"strings"

	"lodge-booking/internal/pkg/errs"
)

var ErrUnknownStatus = errs.New("unknown availability status")

// Status is a closed set; every switch over it lists all five values.
type Status uint8

const (
	StatusAvailable Status = iota + 1
	// StatusEdge marks a checkout or check-in day: exactly one adjacent night is taken.
	StatusEdge
	StatusProposed
	StatusOccupied
	StatusBlocked
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusEdge:
		return "edge"
	case StatusProposed:
		return "proposed"
	case StatusOccupied:
		return "occupied"
	case StatusBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return StatusAvailable, nil
	case "edge":
		return StatusEdge, nil
	case "proposed":
		return StatusProposed, nil
	case "occupied", "booked":
		return StatusOccupied, nil
	case "blocked":
		return StatusBlocked, nil
	default:
		return 0, errs.Mark(errs.Newf("status %q", s), ErrUnknownStatus)
	}
}

// IsSelectable reports whether a day with this status may be part of a new selection.
func (s Status) IsSelectable() bool {
	switch s {
	case StatusAvailable, StatusEdge:
		return true
	case StatusProposed, StatusOccupied, StatusBlocked:
		return false
	default:
		return false
	}
}

// precedence orders statuses for conflict resolution: blocked > occupied > proposed > edge > available.
func (s Status) precedence() int {
	switch s {
	case StatusAvailable:
		return 1
	case StatusEdge:
		return 2
	case StatusProposed:
		return 3
	case StatusOccupied:
		return 4
	case StatusBlocked:
		return 5
	default:
		return 0
	}
}

// Max returns the status with the higher precedence.
func Max(a, b Status) Status {
	if b.precedence() > a.precedence() {
		return b
	}
	return a
}

func (s Status) MarshalText() ([]byte, error) {
	if s.precedence() == 0 {
		return nil, errs.Mark(errs.Newf("status %d", uint8(s)), ErrUnknownStatus)
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
