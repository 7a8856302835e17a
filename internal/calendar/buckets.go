package calendar

import (
	"fmt"
	"time"
)

// WeekKey returns the ISO year-week of a date, e.g. 2024-W23.
func WeekKey(t time.Time) string {
	year, week := t.In(pacific).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns YYYY-MM.
func MonthKey(t time.Time) string {
	t = t.In(pacific)
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// WeekStart returns the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.In(pacific).Weekday()) + 6) % 7
	return AddDays(t, -offset)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.In(pacific)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, pacific)
}

// AddMonths moves a month start by n months.
func AddMonths(monthStart time.Time, n int) time.Time {
	t := monthStart.In(pacific)
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, pacific)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return AddDays(AddMonths(MonthStart(t), 1), -1)
}
