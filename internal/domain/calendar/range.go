package calendar

import (
	"fmt"
	"time"

	"lodge-booking/internal/pkg/errs"
)

var (
	ErrInvalidRange = errs.New("range end must not precede start")
	ErrRangeTooLong = errs.New("range exceeds the night limit")
)

// DateRange is an immutable {Start, End} pair with Start <= End. It occupies the nights
// [Start, End); End itself is the checkout day.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func NewDateRange(start, end Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, errs.Mark(errs.New("range bounds must be set"), ErrInvalidRange)
	}
	if end.Before(start) {
		return DateRange{}, errs.Mark(errs.Newf("%s precedes %s", end, start), ErrInvalidRange)
	}
	return DateRange{Start: start, End: end}, nil
}

func MustRange(start, end string) DateRange {
	r, err := NewDateRange(MustParseDate(start), MustParseDate(end))
	if err != nil {
		panic(err)
	}
	return r
}

// Span orders two clicked days into a range, whichever came first.
func Span(a, b Date) DateRange {
	return DateRange{Start: MinDate(a, b), End: MaxDate(a, b)}
}

func (r DateRange) Validate() error {
	_, err := NewDateRange(r.Start, r.End)
	return err
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Nights is End - Start in whole days, never rounded up.
func (r DateRange) Nights() int {
	return DaysBetween(r.Start, r.End)
}

// CheckNights rejects a range longer than limit nights. A limit of zero or less disables it.
func (r DateRange) CheckNights(limit int) error {
	if limit > 0 && r.Nights() > limit {
		return errs.Mark(errs.Newf("%s..%s spans %d nights, limit is %d", r.Start, r.End, r.Nights(), limit), ErrRangeTooLong)
	}
	return nil
}

// DaysInclusive counts calendar days touched by the range, for display only.
func (r DateRange) DaysInclusive() int {
	return r.Nights() + 1
}

func (r DateRange) OccupiesNight(night Date) bool {
	return IsNightOccupied(night, r.Start, r.End)
}

// Overlaps reports whether the two ranges share at least one night. A zero-night range
// occupies nothing and overlaps nothing.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(r.End) && o.Start.Before(o.End) &&
		r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Adjacent reports a checkout on one side that equals a check-in on the other.
func (r DateRange) Adjacent(o DateRange) bool {
	return r.End == o.Start || o.End == r.Start
}

// Contains reports whether d lies in the inclusive day span.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates lists every day of the inclusive span, Start through End.
func (r DateRange) Dates() []Date {
	if r.End.Before(r.Start) {
		return nil
	}
	out := make([]Date, 0, r.DaysInclusive())
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// NightDates lists the nights occupied by the range.
func (r DateRange) NightDates() []Date {
	out := make([]Date, 0, max(r.Nights(), 0))
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// Month identifies a calendar month for month views.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return Month{}, errs.Mark(errs.Wrapf(err, "parse month %q", s), ErrInvalidDateFormat)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }

func (m Month) Last() Date { return m.Next().First().AddDays(-1) }

func (m Month) Next() Month { return MonthOf(m.First().AddMonths(1)) }

func (m Month) Prev() Month { return MonthOf(m.First().AddMonths(-1)) }

// Days is the inclusive range of the month's days.
func (m Month) Days() DateRange {
	return DateRange{Start: m.First(), End: m.Last()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
