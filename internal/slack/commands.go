package slack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shubh-37/journal-companion/internal/journal"
	"github.com/shubh-37/journal-companion/internal/models"
)

// Journal is the slice of the journal service exposed over Slack.
type Journal interface {
	Today() string
	AppendVenting(ctx context.Context, date, text string) (*models.JournalEntry, error)
	SubmitMessage(ctx context.Context, date, text string) (*journal.ConversationReply, error)
	DeriveGoal(ctx context.Context, date string) (string, error)
	Streak(ctx context.Context) (models.StreakStats, error)
	SetMilestone(ctx context.Context, milestone *int) (models.StreakStats, error)
	GeneratePrompts(ctx context.Context, date string) ([]string, error)
	Summary(ctx context.Context, period models.Period, anchor string) (models.Insight, error)
}

const threadTTL = 48 * time.Hour

// threads maps Slack message timestamps to the journal date of the
// conversation they belong to.
type threads struct {
	cache *collection.Cache
}

func newThreads() (*threads, error) {
	c, err := collection.NewCache(threadTTL, collection.WithName("slack-threads"))
	if err != nil {
		return nil, fmt.Errorf("failed to create thread cache: %w", err)
	}
	return &threads{cache: c}, nil
}

func (t *threads) remember(ts, date string) {
	if ts != "" {
		t.cache.Set(ts, date)
	}
}

func (t *threads) dateFor(ts string) (string, bool) {
	v, ok := t.cache.Get(ts)
	if !ok {
		return "", false
	}
	date, ok := v.(string)
	return date, ok
}

type CommandHandler struct {
	client  Messenger
	journal Journal
	threads *threads
}

func NewCommandHandler(client Messenger, j Journal) (*CommandHandler, error) {
	th, err := newThreads()
	if err != nil {
		return nil, err
	}
	return &CommandHandler{client: client, journal: j, threads: th}, nil
}

// HandleVent appends text to today's venting entry and confirms the
// classification.
func (h *CommandHandler) HandleVent(ctx context.Context, channelID, text string) error {
	entry, err := h.journal.AppendVenting(ctx, h.journal.Today(), text)
	if err != nil {
		return h.reportError(ctx, channelID, "save your entry", err)
	}

	sentiment := string(entry.Sentiment)
	if sentiment == "" {
		sentiment = "unclassified"
	}
	themes := "none"
	if len(entry.Themes) > 0 {
		themes = strings.Join(entry.Themes, ", ")
	}
	return h.send(channelID, fmt.Sprintf("Got it! Saved to %s. Sentiment: *%s* | Themes: %s", entry.Date, sentiment, themes))
}

// HandleTalk sends text to today's conversation and answers in a thread
// rooted at the user's message.
func (h *CommandHandler) HandleTalk(ctx context.Context, channelID, threadTS, text string) error {
	if strings.TrimSpace(text) == "" {
		return h.send(channelID, "Tell me what's on your mind: `@Journal talk [message]`")
	}
	date := h.journal.Today()
	if known, ok := h.threads.dateFor(threadTS); ok {
		date = known
	}

	out, err := h.journal.SubmitMessage(ctx, date, text)
	if err != nil {
		return h.reportError(ctx, channelID, "continue the conversation", err)
	}

	h.threads.remember(threadTS, date)
	ts, err := h.client.SendThreadReply(channelID, threadTS, out.Reply)
	if err != nil {
		return err
	}
	h.threads.remember(ts, date)
	return nil
}

// HandleGoal derives a goal from the conversation of the given date.
func (h *CommandHandler) HandleGoal(ctx context.Context, channelID, date string) error {
	goal, err := h.journal.DeriveGoal(ctx, date)
	if err != nil {
		return h.reportError(ctx, channelID, "derive a goal", err)
	}
	return h.send(channelID, "🎯 *Your goal:* "+goal)
}

// HandleStreak reports the current streak statistics.
func (h *CommandHandler) HandleStreak(ctx context.Context, channelID string) error {
	stats, err := h.journal.Streak(ctx)
	if err != nil {
		return h.reportError(ctx, channelID, "load your streak", err)
	}
	return h.send(channelID, formatStreak(stats))
}

// HandleMilestone sets or clears the streak milestone.
func (h *CommandHandler) HandleMilestone(ctx context.Context, channelID string, args []string) error {
	if len(args) == 0 {
		return h.send(channelID, "Usage: `@Journal milestone [days]` or `@Journal milestone clear`")
	}

	var milestone *int
	if args[0] != "clear" {
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return h.send(channelID, "❌ Milestone must be a number of days")
		}
		milestone = &days
	}

	stats, err := h.journal.SetMilestone(ctx, milestone)
	if err != nil {
		return h.reportError(ctx, channelID, "update your milestone", err)
	}
	return h.send(channelID, formatStreak(stats))
}

// HandlePrompts generates writing prompts for today.
func (h *CommandHandler) HandlePrompts(ctx context.Context, channelID string) error {
	prompts, err := h.journal.GeneratePrompts(ctx, h.journal.Today())
	if err != nil {
		return h.reportError(ctx, channelID, "come up with prompts", err)
	}

	message := "*Prompts for today:*\n"
	for i, p := range prompts {
		message += fmt.Sprintf("%d. %s\n", i+1, p)
	}
	return h.send(channelID, message)
}

// HandleSummary narrates this week or this month.
func (h *CommandHandler) HandleSummary(ctx context.Context, channelID string, args []string) error {
	period := models.PeriodWeekly
	if len(args) > 0 {
		p, ok := models.ParsePeriod(args[0])
		if !ok || p == models.PeriodDaily {
			return h.send(channelID, "Usage: `@Journal summary [weekly|monthly]`")
		}
		period = p
	}

	insight, err := h.journal.Summary(ctx, period, "")
	if err != nil {
		return h.reportError(ctx, channelID, "summarize your journal", err)
	}
	return h.send(channelID, formatInsight(insight))
}

func (h *CommandHandler) send(channelID, message string) error {
	_, err := h.client.SendMessage(channelID, message)
	return err
}

// reportError tells the user what went wrong. Validation and not-found
// messages are shown as-is; everything else is logged and summarized.
func (h *CommandHandler) reportError(ctx context.Context, channelID, action string, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrNotFound):
		return h.send(channelID, "❌ "+err.Error())
	default:
		logx.WithContext(ctx).Errorf("❌ Failed to %s: %v", action, err)
		return h.send(channelID, fmt.Sprintf("❌ Failed to %s. Please try again.", action))
	}
}

func formatStreak(stats models.StreakStats) string {
	message := "*Journaling Streak*\n\n"
	message += fmt.Sprintf("🔥 Current streak: *%d* days\n", stats.CurrentStreak)
	message += fmt.Sprintf("🏆 Longest streak: *%d* days\n", stats.LongestStreak)
	message += fmt.Sprintf("📅 Days journaled: *%d*\n", stats.TotalDays)
	if stats.HasEntryToday {
		message += "✅ You've journaled today\n"
	} else {
		message += "✏️ No entry yet today\n"
	}
	if stats.Milestone != nil && stats.MilestoneProgress != nil && stats.DaysRemaining != nil {
		message += fmt.Sprintf("\n🎯 Milestone: %d days (%.0f%%, %d to go)", *stats.Milestone, *stats.MilestoneProgress, *stats.DaysRemaining)
	}
	return message
}

func formatInsight(insight models.Insight) string {
	message := insight.Summary.Summary + "\n"
	if len(insight.Patterns) > 0 {
		message += "\n*Patterns:*\n"
		for _, p := range insight.Patterns {
			message += "• " + p + "\n"
		}
	}
	if len(insight.ReflectionQuestions) > 0 {
		message += "\n*Reflect on:*\n"
		for _, q := range insight.ReflectionQuestions {
			message += "• " + q + "\n"
		}
	}
	if insight.Progress != nil {
		message += fmt.Sprintf("\n📈 %d entries vs %d in %s", insight.Progress.CurrentStats.TotalEntries, insight.Progress.PrevStats.TotalEntries, insight.Progress.PrevPeriod)
	}
	return message
}
