// Package streak derives writing-streak statistics from the set of dates that
// have at least one journal entry.
package streak

import (
	"math"
	"sort"
	"time"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
)

// ValidateMilestone rejects non-positive milestones. A nil milestone clears it.
func ValidateMilestone(milestone *int) error {
	if milestone != nil && *milestone <= 0 {
		return models.Validationf("milestone must be a positive number")
	}
	return nil
}

// Calculate computes streak statistics. dates may contain duplicates and be in
// any order; unparseable dates are ignored. today is a Pacific calendar date.
func Calculate(dates []string, today string, milestone *int) models.StreakStats {
	stats := models.StreakStats{
		ServerDate: today,
	}
	if milestone != nil && *milestone > 0 {
		m := *milestone
		stats.Milestone = &m
	}

	days := distinctDays(dates)
	stats.TotalDays = len(days)
	if len(days) > 0 {
		last := calendar.Format(days[len(days)-1])
		stats.LastJournalDate = &last
	}

	stats.LongestStreak = longestRun(days)
	if todayDate, err := calendar.Parse(today); err == nil {
		stats.CurrentStreak = currentRun(days, todayDate)
		stats.HasEntryToday = contains(days, todayDate)
	}

	if stats.Milestone != nil {
		m := *stats.Milestone
		progress := math.Min(float64(stats.CurrentStreak)/float64(m)*100, 100)
		remaining := max(m-stats.CurrentStreak, 0)
		stats.MilestoneProgress = &progress
		stats.DaysRemaining = &remaining
	}
	return stats
}

func distinctDays(dates []string) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		if _, ok := seen[s]; ok {
			continue
		}
		d, err := calendar.Parse(s)
		if err != nil {
			continue
		}
		seen[s] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func contains(days []time.Time, day time.Time) bool {
	i := sort.Search(len(days), func(i int) bool { return !days[i].Before(day) })
	return i < len(days) && days[i].Equal(day)
}

func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if calendar.DaysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// currentRun measures the run ending at the most recent date on or before
// today. The run stays current while that date is today or yesterday.
func currentRun(days []time.Time, today time.Time) int {
	end := -1
	for i := len(days) - 1; i >= 0; i-- {
		if !days[i].After(today) {
			end = i
			break
		}
	}
	if end < 0 || calendar.DaysBetween(days[end], today) > 1 {
		return 0
	}
	run := 1
	for i := end - 1; i >= 0; i-- {
		if calendar.DaysBetween(days[i], days[i+1]) != 1 {
			break
		}
		run++
	}
	return run
}
