package slack

import (
	"context"
	"strings"

	"github.com/slack-go/slack/slackevents"
)

type MessageHandler struct {
	client         Messenger
	commandHandler *CommandHandler
	channelID      string
}

func NewMessageHandler(client Messenger, commandHandler *CommandHandler) *MessageHandler {
	return &MessageHandler{
		client:         client,
		commandHandler: commandHandler,
	}
}

// RestrictTo limits plain-message journaling to one channel. Mentions are
// answered everywhere.
func (h *MessageHandler) RestrictTo(channelID string) {
	h.channelID = channelID
}

// HandleMessage journals plain channel messages. Replies inside a known
// conversation thread continue that conversation.
func (h *MessageHandler) HandleMessage(ctx context.Context, event *slackevents.MessageEvent) error {
	if event.BotID != "" {
		return nil
	}

	if event.User == h.client.BotID() {
		return nil
	}

	if event.SubType != "" {
		return nil
	}

	if h.channelID != "" && event.Channel != h.channelID {
		return nil
	}

	text := strings.TrimSpace(event.Text)
	if text == "" {
		return nil
	}

	// Mentions arrive again as app_mention events
	if strings.HasPrefix(text, "<@") {
		return nil
	}

	if event.ThreadTimeStamp != "" && event.ThreadTimeStamp != event.TimeStamp {
		if _, ok := h.commandHandler.threads.dateFor(event.ThreadTimeStamp); ok {
			return h.commandHandler.HandleTalk(ctx, event.Channel, event.ThreadTimeStamp, text)
		}
		return nil
	}

	return h.commandHandler.HandleVent(ctx, event.Channel, text)
}

func (h *MessageHandler) HandleAppMention(ctx context.Context, event *slackevents.AppMentionEvent) error {
	text := strings.TrimSpace(strings.Replace(event.Text, "<@"+h.client.BotID()+">", "", 1))
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return h.sendHelpMessage(event.Channel)
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(text, parts[0]))

	threadTS := event.ThreadTimeStamp
	if threadTS == "" {
		threadTS = event.TimeStamp
	}

	switch command {
	case "help":
		return h.sendHelpMessage(event.Channel)
	case "streak", "stats":
		return h.commandHandler.HandleStreak(ctx, event.Channel)
	case "milestone":
		return h.commandHandler.HandleMilestone(ctx, event.Channel, args)
	case "talk":
		return h.commandHandler.HandleTalk(ctx, event.Channel, threadTS, rest)
	case "goal":
		date := h.commandHandler.journal.Today()
		if len(args) > 0 {
			date = args[0]
		} else if known, ok := h.commandHandler.threads.dateFor(threadTS); ok {
			date = known
		}
		return h.commandHandler.HandleGoal(ctx, event.Channel, date)
	case "prompts":
		return h.commandHandler.HandlePrompts(ctx, event.Channel)
	case "summary":
		return h.commandHandler.HandleSummary(ctx, event.Channel, args)
	case "vent":
		if rest == "" {
			return h.sendHelpMessage(event.Channel)
		}
		return h.commandHandler.HandleVent(ctx, event.Channel, rest)
	}

	return h.commandHandler.HandleVent(ctx, event.Channel, text)
}

func (h *MessageHandler) sendHelpMessage(channelID string) error {
	helpText := `*Journal Companion*

Write to me any time. Plain messages are saved to today's journal entry.

*Commands:*
- @Journal talk [message] - Start or continue today's conversation (reply in the thread to keep going)
- @Journal goal - Turn today's conversation into a small goal
- @Journal streak - Show your journaling streak
- @Journal milestone [days|clear] - Set or clear a streak milestone
- @Journal prompts - Get writing prompts for today
- @Journal summary [weekly|monthly] - Summarize this week or month
- @Journal help - Show this help

React with 🎯 on one of my replies to get a goal from that conversation.`

	_, err := h.client.SendMessage(channelID, helpText)
	return err
}
