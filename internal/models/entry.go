package models

import (
	"strings"
	"time"
)

// Mode selects which kind of journal entry a record holds
type Mode string

const (
	ModeVenting      Mode = "venting"
	ModeConversation Mode = "conversation"
)

// ParseMode accepts the wire spelling of a mode, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeVenting:
		return ModeVenting, true
	case ModeConversation:
		return ModeConversation, true
	}
	return "", false
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Score maps a sentiment onto +1/0/-1. Absent or unknown values score as neutral.
func (s Sentiment) Score() float64 {
	switch s {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// Normalize folds absent or unknown sentiments into neutral.
func (s Sentiment) Normalize() Sentiment {
	switch s {
	case SentimentPositive, SentimentNegative:
		return s
	default:
		return SentimentNeutral
	}
}

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Turn is one message of a conversation-mode entry
type Turn struct {
	Role    Role   `json:"role" msgpack:"role"`
	Content string `json:"content" msgpack:"content"`
}

// JournalEntry is the stored record for one (date, mode) pair
type JournalEntry struct {
	ID           string    `json:"id,omitempty" msgpack:"id"`
	Date         string    `json:"date" msgpack:"date"` // YYYY-MM-DD, Pacific calendar
	Mode         Mode      `json:"mode" msgpack:"mode"`
	Text         string    `json:"text,omitempty" msgpack:"text"`
	Conversation []Turn    `json:"conversation,omitempty" msgpack:"conversation"`
	Sentiment    Sentiment `json:"sentiment,omitempty" msgpack:"sentiment"`
	Themes       []string  `json:"themes" msgpack:"themes"`
	Goal         string    `json:"goal,omitempty" msgpack:"goal"`
	CreatedAt    time.Time `json:"created_at,omitempty" msgpack:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" msgpack:"updated_at"`
}

// NewVentingEntry creates a venting entry with defaults
func NewVentingEntry(date, text string) *JournalEntry {
	return &JournalEntry{
		Date:   date,
		Mode:   ModeVenting,
		Text:   text,
		Themes: []string{},
	}
}

// NewConversationEntry creates an empty conversation entry
func NewConversationEntry(date string) *JournalEntry {
	return &JournalEntry{
		Date:         date,
		Mode:         ModeConversation,
		Conversation: []Turn{},
		Themes:       []string{},
	}
}

// Key identifies the entry within the collection.
func (e *JournalEntry) Key() EntryKey {
	return EntryKey{Date: e.Date, Mode: e.Mode}
}

// UserText returns the text the classifier and summarizer look at: the venting
// text, or every user turn of a conversation joined by spaces.
func (e *JournalEntry) UserText() string {
	if e.Mode == ModeVenting {
		return e.Text
	}
	parts := make([]string, 0, len(e.Conversation))
	for _, turn := range e.Conversation {
		if turn.Role == RoleUser {
			parts = append(parts, turn.Content)
		}
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy so callers can never mutate stored state.
func (e *JournalEntry) Clone() *JournalEntry {
	if e == nil {
		return nil
	}
	out := *e
	if e.Conversation != nil {
		out.Conversation = append(make([]Turn, 0, len(e.Conversation)), e.Conversation...)
	}
	if e.Themes != nil {
		out.Themes = append(make([]string, 0, len(e.Themes)), e.Themes...)
	}
	return &out
}

// EntryKey is the uniqueness key of the entry collection
type EntryKey struct {
	Date string
	Mode Mode
}
