package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
	"github.com/shubh-37/journal-companion/internal/trends"
)

const (
	noEntriesSummary    = "You haven't started journaling yet. Start writing to see insights!"
	emptyPeriodTemplate = "No entries found for %s. Start journaling to see insights!"
)

// Trends returns the daily, weekly and monthly series ending at anchor
// (today when empty).
func (s *Service) Trends(ctx context.Context, anchor string) (models.TrendSeries, error) {
	anchor, at, err := s.resolveDate(anchor)
	if err != nil {
		return models.TrendSeries{}, err
	}
	entries, err := s.snapshot(ctx)
	if err != nil {
		return models.TrendSeries{}, err
	}
	compute := func() (models.TrendSeries, error) {
		return trends.Trends(entries, at)
	}
	if s.trendCache == nil {
		return compute()
	}
	return s.trendCache.Series(entries, anchor, compute)
}

// TrendRange returns one bucket per period step between from and to inclusive.
func (s *Service) TrendRange(ctx context.Context, period models.Period, from, to string) ([]models.Bucket, error) {
	if err := requireDate(from); err != nil {
		return nil, err
	}
	if err := requireDate(to); err != nil {
		return nil, err
	}
	entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return trends.Buckets(entries, period, calendar.MustParse(from), calendar.MustParse(to))
}

// Compare contrasts the period containing anchor with the one before it.
func (s *Service) Compare(ctx context.Context, period models.Period, anchor string) (models.Comparison, error) {
	_, at, err := s.resolveDate(anchor)
	if err != nil {
		return models.Comparison{}, err
	}
	entries, err := s.snapshot(ctx)
	if err != nil {
		return models.Comparison{}, err
	}
	return trends.Compare(entries, period, at)
}

// Summary narrates the weekly or monthly period containing anchor. Canned
// messages are returned without calling the generator when there is nothing
// to summarize.
func (s *Service) Summary(ctx context.Context, period models.Period, anchor string) (models.Insight, error) {
	if period != models.PeriodWeekly && period != models.PeriodMonthly {
		return models.Insight{}, models.Validationf("summary period must be weekly or monthly, got %q", period)
	}
	_, at, err := s.resolveDate(anchor)
	if err != nil {
		return models.Insight{}, err
	}
	entries, err := s.snapshot(ctx)
	if err != nil {
		return models.Insight{}, err
	}
	if len(entries) == 0 {
		return cannedInsight(noEntriesSummary), nil
	}

	comparison, err := trends.Compare(entries, period, at)
	if err != nil {
		return models.Insight{}, err
	}
	inPeriod, err := trends.InPeriod(entries, period, at)
	if err != nil {
		return models.Insight{}, err
	}
	if len(inPeriod) == 0 {
		return cannedInsight(fmt.Sprintf(emptyPeriodTemplate, comparison.Period)), nil
	}

	aiCtx, cancel := s.aiContext(ctx)
	defer cancel()
	summary, err := s.ai.Summarize(aiCtx, SummaryRequest{
		Period:     period,
		Label:      comparison.Period,
		Entries:    inPeriod,
		Comparison: comparison,
	})
	if err != nil {
		return models.Insight{}, models.CollaboratorError("summarize", err)
	}

	insight := models.Insight{Summary: normalizeSummary(summary)}
	if comparison.PrevStats.TotalEntries > 0 {
		insight.Progress = &comparison
	}
	return insight, nil
}

// snapshot reads the entry collection under the read lock.
func (s *Service) snapshot(ctx context.Context) ([]models.JournalEntry, error) {
	s.entriesMu.RLock()
	defer s.entriesMu.RUnlock()
	return s.loadEntries(ctx)
}

func cannedInsight(message string) models.Insight {
	return models.Insight{Summary: models.Summary{
		Summary:             message,
		Patterns:            []string{},
		ReflectionQuestions: []string{},
	}}
}

func normalizeSummary(summary models.Summary) models.Summary {
	if summary.Patterns == nil {
		summary.Patterns = []string{}
	}
	if summary.ReflectionQuestions == nil {
		summary.ReflectionQuestions = []string{}
	}
	return summary
}

func weekday(t time.Time) string {
	return t.Weekday().String()
}
