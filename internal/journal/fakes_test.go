package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/models"
)

var errBoom = errors.New("boom")

// memoryStore implements every repository in memory.
type memoryStore struct {
	mu        sync.Mutex
	entries   []models.JournalEntry
	settings  models.StreakSettings
	prompts   models.PromptSets
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *memoryStore) LoadEntries(context.Context) ([]models.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return cloneEntries(m.entries), nil
}

func (m *memoryStore) SaveEntries(_ context.Context, entries []models.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = cloneEntries(entries)
	return nil
}

func (m *memoryStore) LoadSettings(context.Context) (models.StreakSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return models.StreakSettings{}, m.loadErr
	}
	return m.settings, nil
}

func (m *memoryStore) SaveSettings(_ context.Context, settings models.StreakSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = settings
	return nil
}

func (m *memoryStore) LoadPrompts(context.Context) (models.PromptSets, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.prompts.Clone(), nil
}

func (m *memoryStore) SavePrompts(_ context.Context, prompts models.PromptSets) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.prompts = prompts.Clone()
	return nil
}

func (m *memoryStore) stored() []models.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneEntries(m.entries)
}

func cloneEntries(entries []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, 0, len(entries))
	for i := range entries {
		out = append(out, *entries[i].Clone())
	}
	return out
}

// stubAI is a scriptable collaborator that records how often it was called.
type stubAI struct {
	mu sync.Mutex

	classify  func(text string) (models.Classification, error)
	reply     func(turns []models.Turn) (string, error)
	goal      func(turns []models.Turn) (string, error)
	summarize func(req SummaryRequest) (models.Summary, error)
	prompts   func(req PromptRequest) ([]string, error)

	classifyCalls  int
	replyCalls     int
	summarizeCalls int
	promptCalls    int
	lastSummary    SummaryRequest
	lastPrompt     PromptRequest
}

func (s *stubAI) Classify(_ context.Context, text string) (models.Classification, error) {
	s.mu.Lock()
	s.classifyCalls++
	fn := s.classify
	s.mu.Unlock()
	if fn == nil {
		return models.Classification{Sentiment: models.SentimentNeutral, Themes: []string{}}, nil
	}
	return fn(text)
}

func (s *stubAI) Reply(_ context.Context, turns []models.Turn) (string, error) {
	s.mu.Lock()
	s.replyCalls++
	fn := s.reply
	s.mu.Unlock()
	if fn == nil {
		return "Tell me more.", nil
	}
	return fn(turns)
}

func (s *stubAI) DeriveGoal(_ context.Context, turns []models.Turn) (string, error) {
	if s.goal == nil {
		return "Take a short walk after lunch.", nil
	}
	return s.goal(turns)
}

func (s *stubAI) Summarize(_ context.Context, req SummaryRequest) (models.Summary, error) {
	s.mu.Lock()
	s.summarizeCalls++
	s.lastSummary = req
	fn := s.summarize
	s.mu.Unlock()
	if fn == nil {
		return models.Summary{Summary: "A steady week.", Patterns: []string{"work"}, ReflectionQuestions: []string{"What helped?"}}, nil
	}
	return fn(req)
}

func (s *stubAI) GeneratePrompts(_ context.Context, req PromptRequest) ([]string, error) {
	s.mu.Lock()
	s.promptCalls++
	s.lastPrompt = req
	fn := s.prompts
	s.mu.Unlock()
	if fn == nil {
		return []string{"What went well today?", "Who did you help?"}, nil
	}
	return fn(req)
}

const testToday = "2024-06-03"

func newTestService(t *testing.T, store *memoryStore, ai *stubAI, opts ...Option) *Service {
	t.Helper()
	ids := 0
	base := []Option{
		WithClock(calendar.ClockAt(testToday)),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("entry-%d", ids)
		}),
	}
	return NewService(store, store, store, ai, append(base, opts...)...)
}
