package api

import "github.com/shubh-37/journal-companion/internal/models"

type JournalRequest struct {
	Entry string `json:"entry"`
	Date  string `json:"date,optional"`
	Mode  string `json:"mode,optional"`
}

type VentingResponse struct {
	Saved  bool                 `json:"saved"`
	Streak int                  `json:"streak"`
	Entry  *models.JournalEntry `json:"entry"`
}

type ConversationResponse struct {
	AIResponse   string               `json:"ai_response"`
	Conversation []models.Turn        `json:"conversation"`
	Streak       int                  `json:"streak"`
	Entry        *models.JournalEntry `json:"entry"`
}

type EntriesRequest struct {
	Date string `form:"date,optional"`
	Mode string `form:"mode,optional"`
}

// EntryWithPrompts is one entry, or {} when absent, plus the date's saved
// prompts when a mode was requested.
type EntryWithPrompts struct {
	*models.JournalEntry
	SavedPrompts []string `json:"saved_prompts,omitempty"`
}

type DatePathRequest struct {
	Date string `path:"date"`
}

type DeleteRequest struct {
	Date string `path:"date"`
	Mode string `form:"mode,optional"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Removed int    `json:"removed"`
	Streak  int    `json:"streak"`
}

type TurnRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GoalRequest struct {
	Date         string        `json:"date,optional"`
	Conversation []TurnRequest `json:"conversation,optional"`
}

type GoalResponse struct {
	Goal string `json:"goal"`
}

type MilestoneRequest struct {
	Milestone *int `json:"milestone,optional"`
}

type TrendsRequest struct {
	Date   string `form:"date,optional"`
	Period string `form:"period,optional"`
	From   string `form:"from,optional"`
	To     string `form:"to,optional"`
}

type RangeResponse struct {
	Period  models.Period   `json:"period"`
	Buckets []models.Bucket `json:"buckets"`
}

type SummaryRequest struct {
	Period string `form:"period,default=weekly"`
	Date   string `form:"date,optional"`
}

type PromptsQuery struct {
	Date string `form:"date,optional"`
}

type PromptsResponse struct {
	Prompts []string `json:"prompts"`
}

type SavePromptsRequest struct {
	Date    string   `json:"date"`
	Prompts []string `json:"prompts"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Date   string `json:"server_date"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
