package slack

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/zeromicro/go-zero/core/logx"
)

// EventsPath is where the Events API posts callbacks.
const EventsPath = "/slack/events"

type Server struct {
	messageHandler  *MessageHandler
	reactionHandler *ReactionHandler
	signingSecret   string
}

func NewServer(messageHandler *MessageHandler, reactionHandler *ReactionHandler, signingSecret string) *Server {
	logx.Infof("🔐 Slack signing secret configured (length: %d)", len(signingSecret))
	return &Server{
		messageHandler:  messageHandler,
		reactionHandler: reactionHandler,
		signingSecret:   signingSecret,
	}
}

// HandleEvents verifies and dispatches one Events API request.
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logx.WithContext(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Errorf("❌ Error reading body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Verify the request signature
	sv, err := slack.NewSecretsVerifier(r.Header, s.signingSecret)
	if err != nil {
		logger.Errorf("❌ Error creating secrets verifier: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := sv.Write(body); err != nil {
		logger.Errorf("❌ Error writing to verifier: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := sv.Ensure(); err != nil {
		logger.Errorf("❌ Error verifying signature: %v", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		logger.Errorf("❌ Error parsing event: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Handle URL verification challenge
	if eventsAPIEvent.Type == slackevents.URLVerification {
		var challenge *slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			logger.Errorf("❌ Error unmarshaling challenge: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		logger.Info("✅ Responding to URL verification challenge")
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(challenge.Challenge))
		return
	}

	if eventsAPIEvent.Type == slackevents.CallbackEvent {
		innerEvent := eventsAPIEvent.InnerEvent

		switch ev := innerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			if err := s.messageHandler.HandleMessage(ctx, ev); err != nil {
				logger.Errorf("❌ Error handling message: %v", err)
			}

		case *slackevents.AppMentionEvent:
			if err := s.messageHandler.HandleAppMention(ctx, ev); err != nil {
				logger.Errorf("❌ Error handling mention: %v", err)
			}

		case *slackevents.ReactionAddedEvent:
			if err := s.reactionHandler.HandleReaction(ctx, ev); err != nil {
				logger.Errorf("❌ Error handling reaction: %v", err)
			}

		default:
			logger.Infof("⚠️ Unsupported event type: %v", innerEvent.Type)
		}
	}

	w.WriteHeader(http.StatusOK)
}
