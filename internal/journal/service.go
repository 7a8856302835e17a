// Package journal owns the journaling core: the entry store, the conversation
// state tracker, the streak milestone and prompt sets, and the read-side
// streak, trend and insight views. Each persisted resource is guarded by its
// own lock; every mutation is a read-modify-write of the whole resource inside
// that lock.
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shubh-37/journal-companion/internal/cache"
	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
)

const defaultAITimeout = 30 * time.Second

type Service struct {
	entries  EntryRepository
	settings SettingsRepository
	prompts  PromptRepository
	ai       Collaborator

	clock      calendar.Clock
	aiTimeout  time.Duration
	trendCache *cache.TrendCache
	newID      func() string

	// Lock order when more than one is held: entries, settings, prompts.
	entriesMu  sync.RWMutex
	settingsMu sync.RWMutex
	promptsMu  sync.RWMutex
}

// Option customizes a Service.
type Option func(*Service)

// WithClock pins the clock used to decide the Pacific "today".
func WithClock(clock calendar.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithAITimeout bounds every collaborator call.
func WithAITimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.aiTimeout = d
		}
	}
}

// WithTrendCache memoizes trend series by collection digest.
func WithTrendCache(c *cache.TrendCache) Option {
	return func(s *Service) {
		s.trendCache = c
	}
}

// WithIDGenerator replaces the UUID generator for new entries.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

func NewService(entries EntryRepository, settings SettingsRepository, prompts PromptRepository, ai Collaborator, opts ...Option) *Service {
	s := &Service{
		entries:   entries,
		settings:  settings,
		prompts:   prompts,
		ai:        ai,
		clock:     calendar.SystemClock,
		aiTimeout: defaultAITimeout,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the Pacific calendar date the service currently considers today.
func (s *Service) Today() string {
	return calendar.TodayString(s.clock)
}

// Health reports whether the entry store is reachable. Stores without a
// health check are always healthy.
func (s *Service) Health(ctx context.Context) error {
	hc, ok := s.entries.(HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.Health(ctx); err != nil {
		return models.PersistenceError("health check", err)
	}
	return nil
}

func (s *Service) aiContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.aiTimeout)
}

// resolveDate defaults an empty date to today and validates the format.
func (s *Service) resolveDate(date string) (string, time.Time, error) {
	if date == "" {
		date = s.Today()
	}
	t, err := calendar.Parse(date)
	if err != nil {
		return "", time.Time{}, models.Validationf("%v", err)
	}
	return date, t, nil
}
