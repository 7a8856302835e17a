package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayUsesPacificCalendar(t *testing.T) {
	// 2024-06-04 05:30 UTC is still the evening of 2024-06-03 in Los Angeles.
	clock := FixedClock(time.Date(2024, 6, 4, 5, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-06-03", TodayString(clock))

	clock = FixedClock(time.Date(2024, 6, 4, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-06-04", TodayString(clock))
}

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", Format(d))

	for _, bad := range []string{"", "2024-2-1", "2023-02-29", "06/01/2024", "2024-06-01T00:00:00Z"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	// Clocks spring forward on 2024-03-10 in Los Angeles.
	d := MustParse("2024-03-09")
	assert.Equal(t, "2024-03-10", Format(AddDays(d, 1)))
	assert.Equal(t, "2024-03-11", Format(AddDays(d, 2)))
	assert.Equal(t, 2, DaysBetween(d, MustParse("2024-03-11")))
	assert.Equal(t, -1, DaysBetween(MustParse("2024-11-04"), MustParse("2024-11-03")))
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-06-03", "2024-W23"},
		{"2024-12-30", "2025-W01"},
		{"2021-01-03", "2020-W53"},
		{"2026-01-01", "2026-W01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekKey(MustParse(tt.date)), tt.date)
	}
}

func TestWeekAndMonthBounds(t *testing.T) {
	assert.Equal(t, "2024-06-03", Format(WeekStart(MustParse("2024-06-09"))))
	assert.Equal(t, "2024-06-03", Format(WeekStart(MustParse("2024-06-03"))))
	assert.Equal(t, "2024-06", MonthKey(MustParse("2024-06-30")))
	assert.Equal(t, "2024-02-29", Format(MonthEnd(MustParse("2024-02-10"))))
	assert.Equal(t, "2023-12-01", Format(AddMonths(MustParse("2024-01-01"), -1)))
}
