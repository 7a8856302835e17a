package journal

import (
	"context"

	"github.com/shubh-37/journal-companion/internal/models"
)

// EntryRepository persists the whole entry collection. Implementations read
// and write it wholesale; the service serializes access.
type EntryRepository interface {
	LoadEntries(ctx context.Context) ([]models.JournalEntry, error)
	SaveEntries(ctx context.Context, entries []models.JournalEntry) error
}

// SettingsRepository persists the streak milestone.
type SettingsRepository interface {
	LoadSettings(ctx context.Context) (models.StreakSettings, error)
	SaveSettings(ctx context.Context, settings models.StreakSettings) error
}

// PromptRepository persists prompt sets keyed by date.
type PromptRepository interface {
	LoadPrompts(ctx context.Context) (models.PromptSets, error)
	SavePrompts(ctx context.Context, prompts models.PromptSets) error
}

// HealthChecker is implemented by repositories backed by a remote store.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Classifier assigns sentiment and themes to journal text.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// Generator produces conversational and reflective content.
type Generator interface {
	Reply(ctx context.Context, conversation []models.Turn) (string, error)
	DeriveGoal(ctx context.Context, conversation []models.Turn) (string, error)
	Summarize(ctx context.Context, req SummaryRequest) (models.Summary, error)
	GeneratePrompts(ctx context.Context, req PromptRequest) ([]string, error)
}

// Collaborator is the external AI dependency as a whole.
type Collaborator interface {
	Classifier
	Generator
}

// SummaryRequest is handed to the generator to narrate one period.
type SummaryRequest struct {
	Period     models.Period
	Label      string
	Entries    []models.JournalEntry
	Comparison models.Comparison
}

// PromptRequest carries the context the generator bases writing prompts on.
type PromptRequest struct {
	Date          string
	Weekday       string
	TopThemes     []string
	RecentEntries []models.JournalEntry
}
