package journal

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shubh-37/journal-companion/internal/models"
	"github.com/shubh-37/journal-companion/internal/streak"
)

// Streak computes the streak statistics as of the Pacific today.
func (s *Service) Streak(ctx context.Context) (models.StreakStats, error) {
	s.entriesMu.RLock()
	defer s.entriesMu.RUnlock()
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return models.StreakStats{}, err
	}
	settings, err := s.settings.LoadSettings(ctx)
	if err != nil {
		return models.StreakStats{}, models.PersistenceError("load streak settings", err)
	}

	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	return streak.Calculate(dates, s.Today(), settings.Milestone), nil
}

// SetMilestone stores the milestone target, or clears it when milestone is nil,
// and returns the refreshed statistics.
func (s *Service) SetMilestone(ctx context.Context, milestone *int) (models.StreakStats, error) {
	if err := streak.ValidateMilestone(milestone); err != nil {
		return models.StreakStats{}, err
	}
	if err := s.saveMilestone(ctx, milestone); err != nil {
		return models.StreakStats{}, err
	}
	if milestone != nil {
		logx.WithContext(ctx).Infow("streak milestone set", logx.Field("milestone", *milestone))
	} else {
		logx.WithContext(ctx).Info("streak milestone cleared")
	}
	return s.Streak(ctx)
}

func (s *Service) saveMilestone(ctx context.Context, milestone *int) error {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	settings, err := s.settings.LoadSettings(ctx)
	if err != nil {
		return models.PersistenceError("load streak settings", err)
	}
	settings.Milestone = milestone
	if err := s.settings.SaveSettings(ctx, settings); err != nil {
		return models.PersistenceError("save streak settings", err)
	}
	return nil
}
