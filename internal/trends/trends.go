// Package trends buckets journal entries by day, ISO week or month and
// computes per-bucket sentiment averages and dominant themes.
package trends

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
)

// Window sizes of the dashboard series, counted in buckets ending at the anchor.
const (
	DailyWindow   = 30
	WeeklyWindow  = 12
	MonthlyWindow = 12
)

// MaxBuckets bounds a single range query, roughly ten years of daily buckets.
const MaxBuckets = 3660

// Buckets aggregates entries into every bucket of the period between from and
// to inclusive. Buckets without entries are still emitted.
func Buckets(entries []models.JournalEntry, period models.Period, from, to time.Time) ([]models.Bucket, error) {
	if to.Before(from) {
		return nil, models.Validationf("range end %s is before start %s", calendar.Format(to), calendar.Format(from))
	}
	spans, err := spansBetween(period, from, to)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*accumulator, len(spans))
	accs := make([]*accumulator, len(spans))
	for i, sp := range spans {
		accs[i] = &accumulator{span: sp, themes: map[string]int{}}
		index[sp.key] = accs[i]
	}

	for _, e := range sortedByDate(entries) {
		d, err := calendar.Parse(e.Date)
		if err != nil {
			continue
		}
		if acc, ok := index[keyFor(period, d)]; ok {
			acc.add(e)
		}
	}

	out := make([]models.Bucket, len(accs))
	for i, acc := range accs {
		out[i] = acc.bucket()
	}
	return out, nil
}

// Trends returns the dashboard series ending at anchor: 30 days, 12 ISO weeks
// and 12 months.
func Trends(entries []models.JournalEntry, anchor time.Time) (models.TrendSeries, error) {
	var series models.TrendSeries
	var err error

	series.Daily, err = Buckets(entries, models.PeriodDaily, calendar.AddDays(anchor, -(DailyWindow-1)), anchor)
	if err != nil {
		return series, err
	}
	weekEnd := calendar.WeekStart(anchor)
	series.Weekly, err = Buckets(entries, models.PeriodWeekly, calendar.AddDays(weekEnd, -7*(WeeklyWindow-1)), anchor)
	if err != nil {
		return series, err
	}
	monthEnd := calendar.MonthStart(anchor)
	series.Monthly, err = Buckets(entries, models.PeriodMonthly, calendar.AddMonths(monthEnd, -(MonthlyWindow-1)), anchor)
	if err != nil {
		return series, err
	}
	return series, nil
}

type span struct {
	key   string
	start time.Time
	end   time.Time
}

// bucketCount is the number of buckets spansBetween would emit.
func bucketCount(period models.Period, from, to time.Time) int {
	switch period {
	case models.PeriodWeekly:
		return calendar.DaysBetween(calendar.WeekStart(from), to)/7 + 1
	case models.PeriodMonthly:
		return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	default:
		return calendar.DaysBetween(from, to) + 1
	}
}

func spansBetween(period models.Period, from, to time.Time) ([]span, error) {
	if n := bucketCount(period, from, to); n > MaxBuckets {
		return nil, models.Validationf("range %s to %s spans %d %s buckets, at most %d allowed",
			calendar.Format(from), calendar.Format(to), n, period, MaxBuckets)
	}
	var spans []span
	switch period {
	case models.PeriodDaily:
		for d := from; !d.After(to); d = calendar.AddDays(d, 1) {
			spans = append(spans, span{key: calendar.Format(d), start: d, end: d})
		}
	case models.PeriodWeekly:
		for w := calendar.WeekStart(from); !w.After(to); w = calendar.AddDays(w, 7) {
			spans = append(spans, span{key: calendar.WeekKey(w), start: w, end: calendar.AddDays(w, 6)})
		}
	case models.PeriodMonthly:
		for m := calendar.MonthStart(from); !m.After(to); m = calendar.AddMonths(m, 1) {
			spans = append(spans, span{key: calendar.MonthKey(m), start: m, end: calendar.MonthEnd(m)})
		}
	default:
		return nil, models.Validationf("unknown period %q", period)
	}
	return spans, nil
}

func keyFor(period models.Period, d time.Time) string {
	switch period {
	case models.PeriodWeekly:
		return calendar.WeekKey(d)
	case models.PeriodMonthly:
		return calendar.MonthKey(d)
	default:
		return calendar.Format(d)
	}
}

// sortedByDate orders entries by date while keeping collection order within a
// day, which fixes the first-seen order used for theme tie-breaks.
func sortedByDate(entries []models.JournalEntry) []models.JournalEntry {
	out := append([]models.JournalEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type accumulator struct {
	span   span
	counts [3]int // positive, neutral, negative
	total  int
	score  float64
	themes map[string]int
	order  []string
}

func (a *accumulator) add(e models.JournalEntry) {
	a.total++
	switch e.Sentiment.Normalize() {
	case models.SentimentPositive:
		a.counts[0]++
	case models.SentimentNegative:
		a.counts[2]++
	default:
		a.counts[1]++
	}
	a.score += e.Sentiment.Score()

	for _, theme := range e.Themes {
		t := NormalizeTheme(theme)
		if t == "" {
			continue
		}
		if _, seen := a.themes[t]; !seen {
			a.order = append(a.order, t)
		}
		a.themes[t]++
	}
}

func (a *accumulator) bucket() models.Bucket {
	b := models.Bucket{
		Key:       a.span.key,
		Start:     calendar.Format(a.span.start),
		End:       calendar.Format(a.span.end),
		Positive:  a.counts[0],
		Neutral:   a.counts[1],
		Negative:  a.counts[2],
		Total:     a.total,
		AllThemes: append([]string{}, a.order...),
	}
	if a.total > 0 {
		b.AverageSentiment = a.score / float64(a.total)
	}
	if dominant, ok := DominantTheme(a.themes, a.order); ok {
		b.DominantTheme = &dominant
	}
	return b
}

// NormalizeTheme lower-cases and trims a theme label.
func NormalizeTheme(theme string) string {
	return strings.ToLower(strings.TrimSpace(theme))
}

// DominantTheme picks the most frequent theme; ties go to the theme seen first.
func DominantTheme(counts map[string]int, order []string) (string, bool) {
	best, bestCount := "", 0
	for _, theme := range order {
		if c := counts[theme]; c > bestCount {
			best, bestCount = theme, c
		}
	}
	return best, bestCount > 0
}

// TopThemes returns up to n themes by descending frequency, first-seen order
// breaking ties.
func TopThemes(entries []models.JournalEntry, n int) []string {
	counts := map[string]int{}
	var order []string
	for _, e := range sortedByDate(entries) {
		for _, theme := range e.Themes {
			t := NormalizeTheme(theme)
			if t == "" {
				continue
			}
			if _, seen := counts[t]; !seen {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func describe(period models.Period, start time.Time) string {
	switch period {
	case models.PeriodWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("Week %d, %d", week, year)
	case models.PeriodMonthly:
		return fmt.Sprintf("%s %d", start.Month(), start.Year())
	default:
		return calendar.Format(start)
	}
}
