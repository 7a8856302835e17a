package slack

import (
	"context"

	"github.com/slack-go/slack/slackevents"
	"github.com/zeromicro/go-zero/core/logx"
)

type ReactionHandler struct {
	client         Messenger
	commandHandler *CommandHandler
}

func NewReactionHandler(client Messenger, commandHandler *CommandHandler) *ReactionHandler {
	return &ReactionHandler{
		client:         client,
		commandHandler: commandHandler,
	}
}

// HandleReaction derives a goal when the user reacts with 🎯 or ✅ to a
// message of a conversation thread.
func (h *ReactionHandler) HandleReaction(ctx context.Context, event *slackevents.ReactionAddedEvent) error {
	if event.User == h.client.BotID() {
		return nil
	}

	date, ok := h.commandHandler.threads.dateFor(event.Item.Timestamp)
	if !ok {
		return nil
	}

	switch event.Reaction {
	case "dart", "white_check_mark", "heavy_check_mark":
		logx.WithContext(ctx).Infof("🎯 Goal requested by reaction for %s", date)
		goal, err := h.commandHandler.journal.DeriveGoal(ctx, date)
		if err != nil {
			return h.commandHandler.reportError(ctx, event.Item.Channel, "derive a goal", err)
		}
		_, err = h.client.SendThreadReply(event.Item.Channel, event.Item.Timestamp, "🎯 *Your goal:* "+goal)
		return err
	}

	return nil
}
