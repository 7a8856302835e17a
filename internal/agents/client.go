package agents

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/zeromicro/go-zero/core/logx"
)

const DefaultModel = "gpt-3.5-turbo"

// Config selects the chat-completions endpoint the agents talk to.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// HTTPClient overrides the transport; tests point it at httptest servers.
	HTTPClient *http.Client
}

// client is the chat-completions plumbing shared by every agent.
type client struct {
	oa    openai.Client
	model string
}

func newClient(cfg Config) (*client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &client{oa: openai.NewClient(opts...), model: model}, nil
}

// complete sends one chat completion and returns the trimmed text of the
// first choice.
func (c *client) complete(ctx context.Context, maxTokens int64, messages ...openai.ChatCompletionMessageParamUnion) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(maxTokens)
	}

	start := time.Now()
	resp, err := c.oa.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to call chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	logx.WithContext(ctx).WithDuration(time.Since(start)).Infow("chat completion",
		logx.Field("model", c.model),
		logx.Field("messages", len(messages)),
		logx.Field("completion_tokens", resp.Usage.CompletionTokens))

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
