package trends

import (
	"time"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
)

// PeriodBounds returns the first and last day of the period containing anchor.
func PeriodBounds(period models.Period, anchor time.Time) (time.Time, time.Time, error) {
	switch period {
	case models.PeriodDaily:
		return anchor, anchor, nil
	case models.PeriodWeekly:
		start := calendar.WeekStart(anchor)
		return start, calendar.AddDays(start, 6), nil
	case models.PeriodMonthly:
		start := calendar.MonthStart(anchor)
		return start, calendar.MonthEnd(start), nil
	}
	return time.Time{}, time.Time{}, models.Validationf("unknown period %q", period)
}

// PreviousAnchor returns a date inside the period immediately before the one
// containing anchor.
func PreviousAnchor(period models.Period, anchor time.Time) (time.Time, error) {
	start, _, err := PeriodBounds(period, anchor)
	if err != nil {
		return time.Time{}, err
	}
	return calendar.AddDays(start, -1), nil
}

// InPeriod returns the entries whose date falls in the period containing
// anchor, in date order.
func InPeriod(entries []models.JournalEntry, period models.Period, anchor time.Time) ([]models.JournalEntry, error) {
	start, end, err := PeriodBounds(period, anchor)
	if err != nil {
		return nil, err
	}
	lo, hi := calendar.Format(start), calendar.Format(end)
	var out []models.JournalEntry
	for _, e := range sortedByDate(entries) {
		if _, err := calendar.Parse(e.Date); err != nil {
			continue
		}
		if e.Date >= lo && e.Date <= hi {
			out = append(out, e)
		}
	}
	return out, nil
}

// Stats counts the entries of the period containing anchor.
func Stats(entries []models.JournalEntry, period models.Period, anchor time.Time) (models.PeriodStats, error) {
	start, end, err := PeriodBounds(period, anchor)
	if err != nil {
		return models.PeriodStats{}, err
	}
	inPeriod, err := InPeriod(entries, period, anchor)
	if err != nil {
		return models.PeriodStats{}, err
	}
	stats := models.PeriodStats{
		Label:        describe(period, start),
		Start:        calendar.Format(start),
		End:          calendar.Format(end),
		TotalEntries: len(inPeriod),
	}
	for _, e := range inPeriod {
		switch e.Sentiment.Normalize() {
		case models.SentimentPositive:
			stats.Positive++
		case models.SentimentNegative:
			stats.Negative++
		default:
			stats.Neutral++
		}
	}
	return stats, nil
}

// Compare computes the stats of the period containing anchor, the stats of the
// period right before it, and the deltas between them.
func Compare(entries []models.JournalEntry, period models.Period, anchor time.Time) (models.Comparison, error) {
	current, err := Stats(entries, period, anchor)
	if err != nil {
		return models.Comparison{}, err
	}
	prevAnchor, err := PreviousAnchor(period, anchor)
	if err != nil {
		return models.Comparison{}, err
	}
	prev, err := Stats(entries, period, prevAnchor)
	if err != nil {
		return models.Comparison{}, err
	}
	return models.Comparison{
		Period:      current.Label,
		PrevPeriod:  prev.Label,
		EntryChange: current.TotalEntries - prev.TotalEntries,
		SentimentChange: models.SentimentChange{
			Positive: current.Positive - prev.Positive,
			Neutral:  current.Neutral - prev.Neutral,
			Negative: current.Negative - prev.Negative,
		},
		CurrentStats: current,
		PrevStats:    prev,
	}, nil
}
