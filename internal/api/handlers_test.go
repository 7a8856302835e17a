package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/router"

	"github.com/shubh-37/journal-companion/internal/calendar"
	"github.com/shubh-37/journal-companion/internal/filestore"
	"github.com/shubh-37/journal-companion/internal/journal"
	"github.com/shubh-37/journal-companion/internal/models"
)

const today = "2024-06-03"

type fakeAI struct {
	reply    string
	replyErr error
}

func (f *fakeAI) Classify(context.Context, string) (models.Classification, error) {
	return models.Classification{Sentiment: models.SentimentPositive, Themes: []string{"work"}}, nil
}

func (f *fakeAI) Reply(context.Context, []models.Turn) (string, error) {
	return f.reply, f.replyErr
}

func (f *fakeAI) DeriveGoal(context.Context, []models.Turn) (string, error) {
	return "Go for a walk", nil
}

func (f *fakeAI) Summarize(context.Context, journal.SummaryRequest) (models.Summary, error) {
	return models.Summary{Summary: "A steady week.", Patterns: []string{"work"}, ReflectionQuestions: []string{"What helped?"}}, nil
}

func (f *fakeAI) GeneratePrompts(context.Context, journal.PromptRequest) ([]string, error) {
	return []string{"What went well?", "What felt heavy?"}, nil
}

func newTestServer(t *testing.T, ai *fakeAI) http.Handler {
	t.Helper()

	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return newRouter(t, journal.NewService(store, store, store, ai, journal.WithClock(calendar.ClockAt(today))))
}

// newRouter registers the routes on a rest server and serves them through a
// go-zero router, which fills in the path variables the handlers parse.
func newRouter(t *testing.T, svc *journal.Service) http.Handler {
	t.Helper()

	var c rest.RestConf
	require.NoError(t, conf.LoadFromYamlBytes([]byte("Name: journal-test\nHost: 127.0.0.1\nPort: 0\nLog:\n  Mode: console\n  Level: error\n"), &c))

	server := rest.MustNewServer(c)
	RegisterHandlers(server, svc)

	rt := router.NewRouter()
	for _, route := range server.Routes() {
		require.NoError(t, rt.Handle(route.Method, route.Path, route.Handler))
	}
	return rt
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(models.Validationf("bad")))
	assert.Equal(t, http.StatusNotFound, StatusFor(models.NotFoundf("gone")))
	assert.Equal(t, http.StatusBadGateway, StatusFor(models.CollaboratorError("reply", assert.AnError)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(models.PersistenceError("save", assert.AnError)))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(assert.AnError))
}

func TestVentingRoundTrip(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodPost, "/journal", `{"entry":"Long day at work"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[VentingResponse](t, rec)
	assert.True(t, saved.Saved)
	assert.Equal(t, 1, saved.Streak)
	require.NotNil(t, saved.Entry)
	assert.Equal(t, today, saved.Entry.Date)
	assert.Equal(t, models.SentimentPositive, saved.Entry.Sentiment)

	rec = do(t, server, http.MethodGet, "/entries?date="+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	entry := decode[models.JournalEntry](t, rec)
	assert.Equal(t, "Long day at work", entry.Text)

	rec = do(t, server, http.MethodGet, "/entries/date/"+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.JournalEntry](t, rec), 1)

	rec = do(t, server, http.MethodGet, "/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.JournalEntry](t, rec), 1)
}

func TestEntriesForMissingDate(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodGet, "/entries?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = do(t, server, http.MethodGet, "/entries/date/2024-05-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, server, http.MethodGet, "/entries?date=2024-05-01&mode=venting", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestJournalValidation(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodPost, "/journal", `{"entry":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodPost, "/journal", `{"entry":"hi","mode":"poetry"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodPost, "/journal", `{"entry":"hi","date":"06/03/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Error, "06/03/2024")
}

func TestConversationTurn(t *testing.T) {
	server := newTestServer(t, &fakeAI{reply: "What made it long?"})

	rec := do(t, server, http.MethodPost, "/journal", `{"entry":"Long day","mode":"conversation"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[ConversationResponse](t, rec)
	assert.Equal(t, "What made it long?", out.AIResponse)
	require.Len(t, out.Conversation, 2)
	assert.Equal(t, models.RoleUser, out.Conversation[0].Role)
	assert.Equal(t, models.RoleAI, out.Conversation[1].Role)
	assert.Equal(t, 1, out.Streak)

	rec = do(t, server, http.MethodGet, "/entries?date="+today+"&mode=conversation", "")
	require.Equal(t, http.StatusOK, rec.Code)
	withPrompts := decode[EntryWithPrompts](t, rec)
	require.NotNil(t, withPrompts.JournalEntry)
	assert.Equal(t, models.ModeConversation, withPrompts.Mode)

	rec = do(t, server, http.MethodPost, "/goal", `{"date":"`+today+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Go for a walk", decode[GoalResponse](t, rec).Goal)
}

func TestConversationCollaboratorFailure(t *testing.T) {
	server := newTestServer(t, &fakeAI{replyErr: assert.AnError})

	rec := do(t, server, http.MethodPost, "/journal", `{"entry":"Long day","mode":"conversation"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "AI service is unavailable, please try again", decode[ErrorResponse](t, rec).Error)

	rec = do(t, server, http.MethodGet, "/entries/date/"+today, "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGoalFromTranscript(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodPost, "/goal", `{"conversation":[{"role":"user","content":"tired"},{"role":"assistant","content":"why?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Go for a walk", decode[GoalResponse](t, rec).Goal)

	rec = do(t, server, http.MethodPost, "/goal", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodPost, "/goal", `{"conversation":[{"role":"narrator","content":"x"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEntry(t *testing.T) {
	server := newTestServer(t, &fakeAI{reply: "ok"})

	do(t, server, http.MethodPost, "/journal", `{"entry":"vent"}`)
	do(t, server, http.MethodPost, "/journal", `{"entry":"talk","mode":"conversation"}`)

	rec := do(t, server, http.MethodDelete, "/entries/"+today+"?mode=venting", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[DeleteResponse](t, rec)
	assert.True(t, out.Success)
	assert.Equal(t, "Entry deleted successfully", out.Message)
	assert.Equal(t, 1, out.Removed)
	assert.Equal(t, 1, out.Streak)

	rec = do(t, server, http.MethodDelete, "/entries/"+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode[DeleteResponse](t, rec)
	assert.Equal(t, 1, out.Removed)
	assert.Equal(t, 0, out.Streak)

	rec = do(t, server, http.MethodDelete, "/entries/"+today, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreakMilestone(t *testing.T) {
	server := newTestServer(t, &fakeAI{})
	do(t, server, http.MethodPost, "/journal", `{"entry":"vent"}`)

	rec := do(t, server, http.MethodPost, "/streak/milestone", `{"milestone":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[models.StreakStats](t, rec)
	require.NotNil(t, stats.Milestone)
	assert.Equal(t, 4, *stats.Milestone)
	require.NotNil(t, stats.DaysRemaining)
	assert.Equal(t, 3, *stats.DaysRemaining)

	rec = do(t, server, http.MethodPost, "/streak/milestone", `{"milestone":-2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodPost, "/streak/milestone", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[models.StreakStats](t, rec).Milestone)

	rec = do(t, server, http.MethodGet, "/streak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats = decode[models.StreakStats](t, rec)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, today, stats.ServerDate)
}

func TestInsights(t *testing.T) {
	server := newTestServer(t, &fakeAI{})
	do(t, server, http.MethodPost, "/journal", `{"entry":"vent"}`)

	rec := do(t, server, http.MethodGet, "/insights/sentiment-trends", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, server, http.MethodGet, "/insights/sentiment-trends?period=daily&from=2024-06-01&to=2024-06-03", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	series := decode[RangeResponse](t, rec)
	assert.Equal(t, models.PeriodDaily, series.Period)
	assert.Len(t, series.Buckets, 3)

	rec = do(t, server, http.MethodGet, "/insights/sentiment-trends?period=daily&from=2024-06-03&to=2024-06-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodGet, "/insights/sentiment-trends?period=daily&from=0001-01-01&to=9999-12-31", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, server, http.MethodGet, "/insights/ai-summary", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "A steady week.", decode[models.Insight](t, rec).Summary.Summary)

	rec = do(t, server, http.MethodGet, "/insights/ai-summary?period=daily", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrompts(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodGet, "/prompts/saved", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"prompts":[]}`, rec.Body.String())

	rec = do(t, server, http.MethodPost, "/prompts", `{"date":"`+today+`","prompts":["One?"," ","Two?"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, server, http.MethodGet, "/prompts/saved?date="+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"One?", "Two?"}, decode[PromptsResponse](t, rec).Prompts)

	rec = do(t, server, http.MethodGet, "/prompts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultPrompts, decode[PromptsResponse](t, rec).Prompts)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthResponse{Status: "ok", Date: today}, decode[HealthResponse](t, rec))
}

type unreachableStore struct {
	*filestore.Store
}

func (unreachableStore) Health(context.Context) error { return assert.AnError }

func TestHealthUnavailable(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	svc := journal.NewService(unreachableStore{store}, store, store, &fakeAI{}, journal.WithClock(calendar.ClockAt(today)))
	server := newRouter(t, svc)

	rec := do(t, server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, HealthResponse{Status: "unavailable", Date: today}, decode[HealthResponse](t, rec))
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t, &fakeAI{})

	rec := do(t, server, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
