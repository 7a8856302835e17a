package slack

import (
	"fmt"

	"github.com/slack-go/slack"
)

// Messenger is the part of the Slack Web API the handlers need.
type Messenger interface {
	BotID() string
	SendMessage(channelID, message string) (string, error)
	SendThreadReply(channelID, threadTS, message string) (string, error)
}

type Client struct {
	api   *slack.Client
	botID string
}

// NewClient authenticates token and remembers the bot's user ID.
func NewClient(token string, options ...slack.Option) (*Client, error) {
	api := slack.New(token, options...)

	authTest, err := api.AuthTest()
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Slack: %w", err)
	}

	return &Client{
		api:   api,
		botID: authTest.UserID,
	}, nil
}

func (c *Client) GetAPI() *slack.Client {
	return c.api
}

func (c *Client) BotID() string {
	return c.botID
}

// SendMessage posts message to channelID and returns its timestamp.
func (c *Client) SendMessage(channelID, message string) (string, error) {
	_, ts, err := c.api.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
	)
	return ts, err
}

// SendThreadReply posts message as a reply in the thread rooted at threadTS.
func (c *Client) SendThreadReply(channelID, threadTS, message string) (string, error) {
	_, ts, err := c.api.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionTS(threadTS),
	)
	return ts, err
}
