// Package agents implements the journal's AI collaborator on top of an
// OpenAI-compatible chat-completions API.
package agents

import (
	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/journal"
)

var _ journal.Collaborator = (*Agents)(nil)

// Agents bundles the categorizer and the companion into one collaborator.
type Agents struct {
	*CategorizerAgent
	*CompanionAgent
}

func New(cfg Config) (*Agents, error) {
	categorizer, err := NewCategorizerAgent(cfg)
	if err != nil {
		return nil, err
	}
	companion, err := NewCompanionAgent(cfg)
	if err != nil {
		return nil, err
	}
	return &Agents{CategorizerAgent: categorizer, CompanionAgent: companion}, nil
}

func weekdayOf(date string) string {
	t, err := calendar.Parse(date)
	if err != nil {
		return "Unknown"
	}
	return t.Weekday().String()
}
