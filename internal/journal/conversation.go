package journal

import (
	"context"
	"errors"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shubh-37/journal-companion/internal/models"
)

// ConversationReply is the outcome of one submitted message.
type ConversationReply struct {
	Reply string               `json:"reply"`
	Entry *models.JournalEntry `json:"entry"`
}

// SubmitMessage appends the user's message to the conversation for date, asks
// the generator for exactly one reply and stores both turns together. When the
// reply cannot be produced nothing is written.
func (s *Service) SubmitMessage(ctx context.Context, date, text string) (*ConversationReply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.Validationf("message text is required")
	}

	s.entriesMu.Lock()
	defer s.entriesMu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}
	date, err = s.resolveWriteDate(entries, date)
	if err != nil {
		return nil, err
	}

	entry, idx := s.findOrCreate(entries, date, models.ModeConversation)
	entry.Conversation = append(entry.Conversation, models.Turn{Role: models.RoleUser, Content: text})

	aiCtx, cancel := s.aiContext(ctx)
	reply, err := s.ai.Reply(aiCtx, entry.Conversation)
	cancel()
	if err != nil {
		return nil, models.CollaboratorError("reply", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, models.CollaboratorError("reply", errors.New("empty reply"))
	}
	entry.Conversation = append(entry.Conversation, models.Turn{Role: models.RoleAI, Content: reply})
	s.classify(ctx, entry)

	if err := s.commit(ctx, entries, idx, entry); err != nil {
		return nil, err
	}
	logx.WithContext(ctx).Infow("conversation turn stored",
		logx.Field("date", date),
		logx.Field("turns", len(entry.Conversation)))
	return &ConversationReply{Reply: reply, Entry: entry.Clone()}, nil
}

// ConversationState reports where the conversation for date stands.
func (s *Service) ConversationState(ctx context.Context, date string) (models.ConversationState, error) {
	entry, err := s.Get(ctx, date, models.ModeConversation)
	if err != nil {
		return "", err
	}
	return models.StateOf(entry), nil
}

// goalAttempts bounds how often DeriveGoal starts over when the conversation
// grows while the generator is working.
const goalAttempts = 3

// DeriveGoal asks the generator for a goal based on the conversation of date
// and stores it on the entry, replacing any earlier goal. The generator runs
// outside the entries lock; when turns are appended meanwhile the goal is
// derived again from the longer conversation. After goalAttempts tries the
// latest goal is stored as is.
func (s *Service) DeriveGoal(ctx context.Context, date string) (string, error) {
	date, _, err := s.resolveDate(date)
	if err != nil {
		return "", err
	}

	for attempt := 1; ; attempt++ {
		entry, err := s.Get(ctx, date, models.ModeConversation)
		if err != nil {
			return "", err
		}
		if entry == nil || len(entry.Conversation) == 0 {
			return "", models.Validationf("no conversation for %s to derive a goal from", date)
		}

		goal, err := s.GoalFromTurns(ctx, entry.Conversation)
		if err != nil {
			return "", err
		}

		stored, err := s.attachGoal(ctx, date, len(entry.Conversation), goal, attempt >= goalAttempts)
		if err != nil {
			return "", err
		}
		if stored {
			return goal, nil
		}
		logx.WithContext(ctx).Infow("conversation changed while deriving goal, retrying",
			logx.Field("date", date),
			logx.Field("attempt", attempt))
	}
}

// attachGoal stores goal on the conversation of date if it still has turns
// turns, or regardless when force is set. It reports whether the goal was
// stored.
func (s *Service) attachGoal(ctx context.Context, date string, turns int, goal string, force bool) (bool, error) {
	s.entriesMu.Lock()
	defer s.entriesMu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(entries, date, models.ModeConversation)
	if idx < 0 {
		return false, models.NotFoundf("conversation for %s was deleted", date)
	}
	stored := entries[idx].Clone()
	if len(stored.Conversation) != turns && !force {
		return false, nil
	}
	stored.Goal = goal
	if err := s.commit(ctx, entries, idx, stored); err != nil {
		return false, err
	}
	return true, nil
}

// GoalFromTurns derives a goal from a transcript without storing anything.
func (s *Service) GoalFromTurns(ctx context.Context, turns []models.Turn) (string, error) {
	if len(turns) == 0 {
		return "", models.Validationf("conversation is required")
	}
	aiCtx, cancel := s.aiContext(ctx)
	defer cancel()

	goal, err := s.ai.DeriveGoal(aiCtx, turns)
	if err != nil {
		return "", models.CollaboratorError("derive goal", err)
	}
	return strings.TrimSpace(goal), nil
}
