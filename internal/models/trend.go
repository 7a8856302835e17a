package models

import "strings"

// Period selects the bucket width of a trend or comparison query
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod accepts daily/weekly/monthly, case-insensitively.
func ParsePeriod(s string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodDaily:
		return PeriodDaily, true
	case PeriodWeekly:
		return PeriodWeekly, true
	case PeriodMonthly:
		return PeriodMonthly, true
	}
	return "", false
}

// Bucket aggregates the entries that fall in one day, ISO week or month.
type Bucket struct {
	Key              string   `json:"key"` // YYYY-MM-DD, YYYY-Www or YYYY-MM
	Start            string   `json:"start"`
	End              string   `json:"end"`
	Positive         int      `json:"positive"`
	Neutral          int      `json:"neutral"`
	Negative         int      `json:"negative"`
	Total            int      `json:"total"`
	AverageSentiment float64  `json:"averageSentiment"`
	DominantTheme    *string  `json:"dominantTheme"`
	AllThemes        []string `json:"allThemes"`
}

// TrendSeries is the dashboard payload: one continuous series per period.
type TrendSeries struct {
	Daily   []Bucket `json:"daily"`
	Weekly  []Bucket `json:"weekly"`
	Monthly []Bucket `json:"monthly"`
}

// PeriodStats counts the entries of one comparison period.
type PeriodStats struct {
	Label        string `json:"label"`
	Start        string `json:"start"`
	End          string `json:"end"`
	TotalEntries int    `json:"total_entries"`
	Positive     int    `json:"positive"`
	Neutral      int    `json:"neutral"`
	Negative     int    `json:"negative"`
}

// SentimentChange is the per-sentiment delta between two periods.
type SentimentChange struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Comparison pairs a period with the one immediately before it.
type Comparison struct {
	Period          string          `json:"period"`
	PrevPeriod      string          `json:"prevPeriod"`
	EntryChange     int             `json:"entryChange"`
	SentimentChange SentimentChange `json:"sentimentChange"`
	CurrentStats    PeriodStats     `json:"currentStats"`
	PrevStats       PeriodStats     `json:"prevStats"`
}
