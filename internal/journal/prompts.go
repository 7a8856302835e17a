package journal

import (
	"context"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
	"github.com/shubh-37/journal-companion/internal/trends"
)

const (
	maxPrompts      = 2
	promptLookback  = 30
	promptTopThemes = 5
)

// GeneratePrompts produces up to two writing prompts for date, appends them to
// the date's saved set and returns them. Without any journaling history the
// default prompts are used.
func (s *Service) GeneratePrompts(ctx context.Context, date string) ([]string, error) {
	date, at, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	entries, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var prompts []string
	if len(entries) == 0 {
		prompts = append([]string(nil), models.DefaultPrompts...)
	} else {
		prompts, err = s.generatePrompts(ctx, entries, date, at)
		if err != nil {
			return nil, err
		}
	}

	s.promptsMu.Lock()
	defer s.promptsMu.Unlock()

	sets, err := s.loadPrompts(ctx)
	if err != nil {
		return nil, err
	}
	sets[date] = append(sets[date], prompts...)
	if err := s.prompts.SavePrompts(ctx, sets); err != nil {
		return nil, models.PersistenceError("save prompts", err)
	}
	return prompts, nil
}

func (s *Service) generatePrompts(ctx context.Context, entries []models.JournalEntry, date string, at time.Time) ([]string, error) {
	since := calendar.Format(calendar.AddDays(at, -promptLookback))
	recent := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= since && e.Date <= date {
			recent = append(recent, e)
		}
	}

	aiCtx, cancel := s.aiContext(ctx)
	defer cancel()
	generated, err := s.ai.GeneratePrompts(aiCtx, PromptRequest{
		Date:          date,
		Weekday:       weekday(at),
		TopThemes:     trends.TopThemes(recent, promptTopThemes),
		RecentEntries: recent,
	})
	if err != nil {
		return nil, models.CollaboratorError("generate prompts", err)
	}

	prompts := make([]string, 0, maxPrompts)
	for _, p := range generated {
		if p = strings.TrimSpace(p); p != "" {
			prompts = append(prompts, p)
		}
		if len(prompts) == maxPrompts {
			break
		}
	}
	if len(prompts) == 0 {
		logx.WithContext(ctx).Infow("generator returned no prompts, using defaults", logx.Field("date", date))
		prompts = append(prompts, models.DefaultPrompts...)
	}
	return prompts, nil
}

// SavedPrompts returns the prompts stored for date, empty when there are none.
func (s *Service) SavedPrompts(ctx context.Context, date string) ([]string, error) {
	date, _, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	s.promptsMu.RLock()
	defer s.promptsMu.RUnlock()

	sets, err := s.loadPrompts(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]string{}, sets[date]...)
	return out, nil
}

// SavePrompts overwrites the prompt set of date.
func (s *Service) SavePrompts(ctx context.Context, date string, prompts []string) error {
	if err := requireDate(date); err != nil {
		return err
	}
	cleaned := make([]string, 0, len(prompts))
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	s.promptsMu.Lock()
	defer s.promptsMu.Unlock()

	sets, err := s.loadPrompts(ctx)
	if err != nil {
		return err
	}
	sets[date] = cleaned
	if err := s.prompts.SavePrompts(ctx, sets); err != nil {
		return models.PersistenceError("save prompts", err)
	}
	return nil
}

func (s *Service) loadPrompts(ctx context.Context) (models.PromptSets, error) {
	sets, err := s.prompts.LoadPrompts(ctx)
	if err != nil {
		return nil, models.PersistenceError("load prompts", err)
	}
	if sets == nil {
		sets = models.PromptSets{}
	}
	return sets.Clone(), nil
}
