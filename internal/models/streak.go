package models

// StreakStats is the derived view returned by streak queries. Only Milestone
// is persisted; everything else is recomputed from the entry dates.
type StreakStats struct {
	CurrentStreak     int      `json:"current_streak"`
	LongestStreak     int      `json:"longest_streak"`
	TotalDays         int      `json:"total_days"`
	LastJournalDate   *string  `json:"last_journal_date"`
	HasEntryToday     bool     `json:"has_entry_today"`
	Milestone         *int     `json:"milestone"`
	MilestoneProgress *float64 `json:"milestone_progress"`
	DaysRemaining     *int     `json:"days_remaining"`
	ServerDate        string   `json:"server_date"`
}

// StreakSettings is the persisted half of the streak state
type StreakSettings struct {
	Milestone *int `json:"milestone"`
}
