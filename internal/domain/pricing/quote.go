package pricing

import (
	"lodge-booking/internal/domain/booking"
	"lodge-booking/internal/domain/room"
)

type Category string

const (
	CategoryRoom       Category = "room"
	CategoryBase       Category = "base"
	CategoryAdult      Category = "adult"
	CategoryChild      Category = "child"
	CategoryToddler    Category = "toddler"
	CategoryAdjustment Category = "adjustment"
)

// Line is one breakdown row; Amount is always Quantity * Rate * Nights except for
// the reconciliation adjustment.
type Line struct {
	Category    Category            `json:"category"`
	Room        room.ID             `json:"room,omitempty"`
	Tier        room.SizeTier       `json:"tier,omitempty"`
	Affiliation booking.Affiliation `json:"affiliation,omitempty"`
	Quantity    int                 `json:"quantity"`
	Rate        int64               `json:"rate"`
	Nights      int                 `json:"nights"`
	Amount      int64               `json:"amount"`
}

func newLine(c Category, qty int, rate int64, nights int) Line {
	return Line{
		Category: c,
		Quantity: qty,
		Rate:     rate,
		Nights:   nights,
		Amount:   int64(qty) * rate * int64(nights),
	}
}

type Quote struct {
	Mode   Mode   `json:"mode"`
	Nights int    `json:"nights"`
	Lines  []Line `json:"lines"`
	Total  int64  `json:"total"`
	// Computed differs from Total only after Reconcile.
	Computed int64 `json:"computed"`
}

func newQuote(mode Mode, nights int, lines []Line) Quote {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}
	return Quote{Mode: mode, Nights: nights, Lines: lines, Total: total, Computed: total}
}

// Reconcile makes the breakdown add up to the stored total, which always wins over
// a recomputation made under newer configuration.
func (q Quote) Reconcile(stored int64) Quote {
	out := q
	out.Lines = append([]Line(nil), q.Lines...)
	if diff := stored - q.Computed; diff != 0 {
		out.Lines = append(out.Lines, Line{Category: CategoryAdjustment, Quantity: 1, Amount: diff})
	}
	out.Total = stored
	return out
}

func (q Quote) IsReconciled() bool {
	return q.Total != q.Computed
}

// Combine concatenates quotes priced separately, such as rooms staying different nights.
// Nights is kept only when every part agrees.
func Combine(mode Mode, quotes ...Quote) Quote {
	var lines []Line
	nights := -1
	for _, q := range quotes {
		lines = append(lines, q.Lines...)
		switch {
		case nights == -1:
			nights = q.Nights
		case nights != q.Nights:
			nights = 0
		}
	}
	if nights < 0 {
		nights = 0
	}
	return newQuote(mode, nights, lines)
}
