package api

import (
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/shubh-37/journal-companion/internal/journal"
	"github.com/shubh-37/journal-companion/internal/models"
)

func journalHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req JournalRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		mode := models.ModeVenting
		if req.Mode != "" {
			m, ok := models.ParseMode(req.Mode)
			if !ok {
				writeError(ctx, w, models.Validationf("unknown mode %q", req.Mode))
				return
			}
			mode = m
		}

		if mode == models.ModeConversation {
			out, err := svc.SubmitMessage(ctx, req.Date, req.Entry)
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			httpx.OkJsonCtx(ctx, w, ConversationResponse{
				AIResponse:   out.Reply,
				Conversation: out.Entry.Conversation,
				Streak:       currentStreak(r, svc),
				Entry:        out.Entry,
			})
			return
		}

		entry, err := svc.WriteVenting(ctx, req.Date, req.Entry)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, VentingResponse{
			Saved:  true,
			Streak: currentStreak(r, svc),
			Entry:  entry,
		})
	}
}

func entriesHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req EntriesRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		if req.Date == "" {
			entries, err := svc.List(ctx)
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			httpx.OkJsonCtx(ctx, w, entries)
			return
		}

		if req.Mode == "" {
			entry, err := svc.Preferred(ctx, req.Date)
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			httpx.OkJsonCtx(ctx, w, EntryWithPrompts{JournalEntry: entry})
			return
		}

		mode, ok := models.ParseMode(req.Mode)
		if !ok {
			writeError(ctx, w, models.Validationf("unknown mode %q", req.Mode))
			return
		}
		entry, err := svc.Get(ctx, req.Date, mode)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		prompts, err := svc.SavedPrompts(ctx, req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, EntryWithPrompts{JournalEntry: entry, SavedPrompts: prompts})
	}
}

func entriesForDateHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req DatePathRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		entries, err := svc.ForDate(ctx, req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, entries)
	}
}

func deleteEntryHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req DeleteRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		var mode *models.Mode
		if req.Mode != "" {
			m, ok := models.ParseMode(req.Mode)
			if !ok {
				writeError(ctx, w, models.Validationf("unknown mode %q", req.Mode))
				return
			}
			mode = &m
		}

		removed, err := svc.Delete(ctx, req.Date, mode)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, DeleteResponse{
			Success: true,
			Message: "Entry deleted successfully",
			Removed: removed,
			Streak:  currentStreak(r, svc),
		})
	}
}

func goalHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req GoalRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		var (
			goal string
			err  error
		)
		switch {
		case req.Date != "":
			goal, err = svc.DeriveGoal(ctx, req.Date)
		case len(req.Conversation) > 0:
			turns, convErr := toTurns(req.Conversation)
			if convErr != nil {
				writeError(ctx, w, convErr)
				return
			}
			goal, err = svc.GoalFromTurns(ctx, turns)
		default:
			err = models.Validationf("no conversation history provided")
		}
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, GoalResponse{Goal: goal})
	}
}

func streakHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Streak(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, stats)
	}
}

func milestoneHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req MilestoneRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		stats, err := svc.SetMilestone(ctx, req.Milestone)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, stats)
	}
}

func trendsHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req TrendsRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		if req.Period == "" {
			series, err := svc.Trends(ctx, req.Date)
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			httpx.OkJsonCtx(ctx, w, series)
			return
		}

		period, ok := models.ParsePeriod(req.Period)
		if !ok {
			writeError(ctx, w, models.Validationf("unknown period %q", req.Period))
			return
		}
		buckets, err := svc.TrendRange(ctx, period, req.From, req.To)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, RangeResponse{Period: period, Buckets: buckets})
	}
}

func summaryHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req SummaryRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		period, ok := models.ParsePeriod(req.Period)
		if !ok {
			writeError(ctx, w, models.Validationf("unknown period %q", req.Period))
			return
		}
		insight, err := svc.Summary(ctx, period, req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, insight)
	}
}

func generatePromptsHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req PromptsQuery
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		prompts, err := svc.GeneratePrompts(ctx, req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, PromptsResponse{Prompts: prompts})
	}
}

func savedPromptsHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req PromptsQuery
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		if req.Date == "" {
			httpx.OkJsonCtx(ctx, w, PromptsResponse{Prompts: []string{}})
			return
		}
		prompts, err := svc.SavedPrompts(ctx, req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, PromptsResponse{Prompts: prompts})
	}
}

func savePromptsHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req SavePromptsRequest
		if err := httpx.Parse(r, &req); err != nil {
			parseError(ctx, w, err)
			return
		}

		if err := svc.SavePrompts(ctx, req.Date, req.Prompts); err != nil {
			writeError(ctx, w, err)
			return
		}
		httpx.OkJsonCtx(ctx, w, SuccessResponse{Success: true})
	}
}

func healthHandler(svc *journal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Health(ctx); err != nil {
			logx.WithContext(ctx).Errorf("health check failed: %v", err)
			httpx.WriteJsonCtx(ctx, w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Date: svc.Today()})
			return
		}
		httpx.OkJsonCtx(ctx, w, HealthResponse{Status: "ok", Date: svc.Today()})
	}
}

// currentStreak is best effort; a failed streak read must not fail a write
// that already succeeded.
func currentStreak(r *http.Request, svc *journal.Service) int {
	stats, err := svc.Streak(r.Context())
	if err != nil {
		return 0
	}
	return stats.CurrentStreak
}

func toTurns(in []TurnRequest) ([]models.Turn, error) {
	turns := make([]models.Turn, 0, len(in))
	for _, t := range in {
		role := models.Role(strings.ToLower(t.Role))
		if role == "assistant" {
			role = models.RoleAI
		}
		if role != models.RoleUser && role != models.RoleAI {
			return nil, models.Validationf("unknown turn role %q", t.Role)
		}
		turns = append(turns, models.Turn{Role: role, Content: t.Content})
	}
	return turns, nil
}
