// Package calendar holds the date and night model shared by every occupancy rule.
//
// A Date is a calendar day with no time-of-day semantics. A night is the half-open
// interval [d, d+1); a DateRange {Start, End} occupies the nights [Start, End), so the
// night that begins on End is free and back-to-back stays never collide.
package calendar

import (
	"fmt"
	"time"

	"lodge-booking/internal/pkg/errs"
)

const (
	isoLayout     = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

var ErrInvalidDateFormat = errs.New("invalid date format")

// Date is stored as midnight UTC so that two values naming the same day compare equal
// with == and can be used as map keys.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts strict YYYY-MM-DD. The day is built from its explicit components,
// so the result never shifts with the process time zone.
func ParseDate(s string) (Date, error) {
	if len(s) != len(isoLayout) {
		return Date{}, errs.Mark(errs.Newf("parse %q: expected YYYY-MM-DD", s), ErrInvalidDateFormat)
	}
	t, err := time.ParseInLocation(isoLayout, s, time.UTC)
	if err != nil {
		return Date{}, errs.Mark(errs.Wrapf(err, "parse %q", s), ErrInvalidDateFormat)
	}
	return FromTime(t), nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func FormatDate(d Date) string {
	return d.String()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths is only well defined for the first of a month; callers use it for month navigation.
func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }

func (d Date) Compare(o Date) int {
	return d.t.Compare(o.t)
}

// DaysBetween counts the nights from a to b, b exclusive. It is negative when b precedes a.
func DaysBetween(a, b Date) int {
	return int((b.t.Unix() - a.t.Unix()) / secondsPerDay)
}

func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

func MaxDate(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) GoString() string {
	return fmt.Sprintf("calendar.MustParseDate(%q)", d.String())
}
