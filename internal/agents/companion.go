package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/openai/openai-go"

	"github.com/shubh-37/journal-companion/internal/journal"
	"github.com/shubh-37/journal-companion/internal/models"
)

const (
	replySystemPrompt = "You are an empathetic, thoughtful journaling assistant. Have a genuine, supportive conversation with the user. Be kind, understanding, and ask meaningful questions to help them reflect."

	goalSystemPrompt = `You are an empathetic, supportive journaling assistant. Based on the conversation with the user, generate one small, friendly, achievable goal.
The goal MUST:
1) Acknowledge their feelings or concerns briefly
2) Be supportive and validating
3) Include a specific, actionable suggestion that states WHEN to do it (e.g. "tomorrow", "before bed tonight", "this week"), HOW LONG it takes in exact minutes (e.g. "2 minutes", "10 minutes"), and WHAT exactly to do

Never suggest journaling, writing, or keeping a journal; the user is already journaling. Suggest breathing exercises, mindfulness, physical activity, self-care, connecting with others, or other concrete actions.
Vary your wording naturally. Keep it concise (2-3 sentences total).`

	summarySystemPrompt = `You are an empathetic journaling assistant analyzing a user's journal entries for %s.
Based on the entries provided, you MUST respond with ONLY valid JSON (no other text) with these exact keys:
- "summary": A brief 2-3 sentence string synthesizing what the user focused on (themes, emotions, events). Be supportive and non-judgmental.
- "patterns": An array of strings with specific pattern observations (e.g. "You tend to write about work stress on Mondays"). Return [] if no clear patterns exist.
- "reflectionQuestions": An array of 2-3 thoughtful questions to help the user gain deeper insight.

Be concise, specific, and supportive. Never make up patterns that don't exist. Return ONLY the JSON object.`

	promptsSystemPrompt = `You are a helpful journaling assistant. Generate 1-2 brief, personalized writing prompts to help the user start journaling.
The prompts should be:
- Short and actionable (one question or phrase)
- Context-aware based on their past themes and patterns
- Encouraging and non-intrusive
- Relevant to daily reflection

Return ONLY a JSON array of 1-2 prompt strings. Format: ["prompt1", "prompt2"]`
)

var quotedString = regexp.MustCompile(`"([^"]+)"`)

// CompanionAgent holds the conversational side of the journal: replies,
// goals, period summaries and writing prompts.
type CompanionAgent struct {
	client *client
}

func NewCompanionAgent(cfg Config) (*CompanionAgent, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	return &CompanionAgent{client: c}, nil
}

// Reply continues the conversation with one assistant message.
func (a *CompanionAgent) Reply(ctx context.Context, conversation []models.Turn) (string, error) {
	messages := append(
		[]openai.ChatCompletionMessageParamUnion{openai.SystemMessage(replySystemPrompt)},
		turnMessages(conversation)...,
	)
	reply, err := a.client.complete(ctx, 300, messages...)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", errors.New("model returned an empty reply")
	}
	return reply, nil
}

// DeriveGoal turns the conversation into one small, time-bound goal.
func (a *CompanionAgent) DeriveGoal(ctx context.Context, conversation []models.Turn) (string, error) {
	messages := append(
		[]openai.ChatCompletionMessageParamUnion{openai.SystemMessage(goalSystemPrompt)},
		turnMessages(conversation)...,
	)
	goal, err := a.client.complete(ctx, 150, messages...)
	if err != nil {
		return "", err
	}
	if goal == "" {
		return "", errors.New("model returned an empty goal")
	}
	return goal, nil
}

// Summarize narrates the entries of one period. A response that is not JSON
// is used verbatim as the summary.
func (a *CompanionAgent) Summarize(ctx context.Context, req journal.SummaryRequest) (models.Summary, error) {
	var lines []string
	for _, e := range req.Entries {
		text := e.UserText()
		if text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s (%s)]: %s", e.Date, weekdayOf(e.Date), text))
	}

	response, err := a.client.complete(ctx, 400,
		openai.SystemMessage(fmt.Sprintf(summarySystemPrompt, req.Label)),
		openai.UserMessage(fmt.Sprintf("Journal entries for %s:\n\n%s", req.Label, strings.Join(lines, "\n\n"))),
	)
	if err != nil {
		return models.Summary{}, err
	}
	return parseSummary(response, req), nil
}

// GeneratePrompts suggests up to two writing prompts for the requested day.
func (a *CompanionAgent) GeneratePrompts(ctx context.Context, req journal.PromptRequest) ([]string, error) {
	var hints []string
	if len(req.TopThemes) > 0 {
		top := req.TopThemes
		if len(top) > 3 {
			top = top[:3]
		}
		hints = append(hints, "Recent themes: "+strings.Join(top, ", "))
	}
	if req.Weekday != "" {
		hints = append(hints, "Day: "+req.Weekday)
	}
	if len(req.RecentEntries) > 0 {
		hints = append(hints, fmt.Sprintf("Journaling frequency: %d entries in last 30 days", len(req.RecentEntries)))
	}
	contextStr := "User is starting to journal."
	if len(hints) > 0 {
		contextStr = strings.Join(hints, ". ")
	}

	response, err := a.client.complete(ctx, 150,
		openai.SystemMessage(promptsSystemPrompt),
		openai.UserMessage(fmt.Sprintf("Context: %s\n\nGenerate 1-2 personalized journal prompts.", contextStr)),
	)
	if err != nil {
		return nil, err
	}
	return parsePrompts(response), nil
}

func turnMessages(conversation []models.Turn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(conversation))
	for _, turn := range conversation {
		if turn.Role == models.RoleAI {
			messages = append(messages, openai.ChatCompletionMessageParamOfAssistant(turn.Content))
		} else {
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	return messages
}

// extractJSON strips a markdown code fence around a JSON payload.
func extractJSON(text string) string {
	if _, after, ok := strings.Cut(text, "```json"); ok {
		inner, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(inner)
	}
	if _, after, ok := strings.Cut(text, "```"); ok {
		inner, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(inner)
	}
	return strings.TrimSpace(text)
}

func parseSummary(response string, req journal.SummaryRequest) models.Summary {
	var parsed struct {
		Summary             *string         `json:"summary"`
		Patterns            json.RawMessage `json:"patterns"`
		ReflectionQuestions json.RawMessage `json:"reflectionQuestions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		summary := response
		if summary == "" {
			summary = fmt.Sprintf("You wrote %d entries in %s.", len(req.Entries), req.Label)
		}
		return models.Summary{Summary: summary, Patterns: []string{}, ReflectionQuestions: []string{}}
	}

	out := models.Summary{
		Summary:             fmt.Sprintf("Here's what stood out in %s.", req.Label),
		Patterns:            stringList(parsed.Patterns),
		ReflectionQuestions: stringList(parsed.ReflectionQuestions),
	}
	if parsed.Summary != nil {
		out.Summary = *parsed.Summary
	}
	return out
}

// stringList decodes a JSON array of strings, yielding an empty list for
// anything else.
func stringList(raw json.RawMessage) []string {
	var list []string
	if len(raw) == 0 || json.Unmarshal(raw, &list) != nil || list == nil {
		return []string{}
	}
	return list
}

func parsePrompts(response string) []string {
	body := extractJSON(response)
	var prompts []string
	if err := json.Unmarshal([]byte(body), &prompts); err != nil {
		prompts = nil
		for _, m := range quotedString.FindAllStringSubmatch(body, -1) {
			prompts = append(prompts, m[1])
		}
	}
	if len(prompts) > 2 {
		prompts = prompts[:2]
	}
	return prompts
}
