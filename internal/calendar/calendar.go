// Package calendar keeps every journal date on the America/Los_Angeles civil
// calendar. Dates travel as YYYY-MM-DD strings and are only turned into
// time.Time values for arithmetic, always at midnight in Pacific time.
package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const (
	// DateLayout is the wire format of a journal date.
	DateLayout = "2006-01-02"
	// Zone is the civil calendar every date is interpreted in.
	Zone = "America/Los_Angeles"
)

var pacific = mustLoad(Zone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("calendar: load %s: %v", name, err))
	}
	return loc
}

// Location returns the Pacific time zone.
func Location() *time.Location {
	return pacific
}

// Clock abstracts the wall clock so "today" can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the real wall clock.
var SystemClock Clock = systemClock{}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ClockAt returns a clock pinned to noon Pacific on the given date.
func ClockAt(date string) FixedClock {
	d := MustParse(date)
	return FixedClock(d.Add(12 * time.Hour))
}

// Today returns the Pacific calendar date of the clock's current instant.
func Today(clock Clock) time.Time {
	now := clock.Now().In(pacific)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, pacific)
}

// TodayString is Today formatted as a journal date.
func TodayString(clock Clock) string {
	return Format(Today(clock))
}

// Parse validates a YYYY-MM-DD string and returns midnight Pacific of that day.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, pacific)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Format renders a date in the wire format.
func Format(t time.Time) string {
	return t.In(pacific).Format(DateLayout)
}

// AddDays moves a date by n calendar days. Calendar arithmetic keeps DST
// transitions from shifting the day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.In(pacific).Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, pacific)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(pacific).Date()
	by, bm, bd := b.In(pacific).Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
