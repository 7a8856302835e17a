package agents

import (
	"context"
	"strings"

	"github.com/openai/openai-go"

	"github.com/shubh-37/journal-companion/internal/models"
)

const classifySystemPrompt = "You are an empathetic journaling assistant. Analyze the user's journal entry and identify key themes/topics and overall sentiment. Respond with ONLY this format: Themes: theme1, theme2, theme3 | Sentiment: positive/negative/neutral"

type CategorizerAgent struct {
	client *client
}

func NewCategorizerAgent(cfg Config) (*CategorizerAgent, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &CategorizerAgent{client: c}, nil
}

// Classify asks the model for the themes and overall sentiment of text.
func (a *CategorizerAgent) Classify(ctx context.Context, text string) (models.Classification, error) {
	response, err := a.client.complete(ctx, 80,
		openai.SystemMessage(classifySystemPrompt),
		openai.UserMessage(text),
	)
	if err != nil {
		return models.Classification{}, err
	}
	return parseClassification(response), nil
}

// parseClassification reads "Themes: a, b | Sentiment: x". Missing parts fall
// back to no themes and neutral sentiment.
func parseClassification(response string) models.Classification {
	result := models.Classification{
		Sentiment: models.SentimentNeutral,
		Themes:    []string{},
	}

	if _, after, ok := strings.Cut(response, "Themes:"); ok {
		themesStr, _, _ := strings.Cut(after, "|")
		themesStr, _, _ = strings.Cut(themesStr, "\n")
		for _, theme := range strings.Split(themesStr, ",") {
			theme = strings.TrimSpace(theme)
			if theme != "" {
				result.Themes = append(result.Themes, theme)
			}
		}
	}

	if _, after, ok := strings.Cut(response, "Sentiment:"); ok {
		sentiment := strings.ToLower(after)
		switch {
		case strings.Contains(sentiment, "positive"):
			result.Sentiment = models.SentimentPositive
		case strings.Contains(sentiment, "negative"):
			result.Sentiment = models.SentimentNegative
		}
	}

	return result
}
