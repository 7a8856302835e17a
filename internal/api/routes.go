// Package api serves the journal over HTTP with go-zero's rest server.
package api

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/shubh-37/journal-companion/internal/journal"
)

// RegisterHandlers mounts every journal route on server.
func RegisterHandlers(server *rest.Server, svc *journal.Service) {
	server.AddRoutes(
		[]rest.Route{
			{Method: http.MethodPost, Path: "/journal", Handler: journalHandler(svc)},
			{Method: http.MethodGet, Path: "/entries", Handler: entriesHandler(svc)},
			{Method: http.MethodGet, Path: "/entries/date/:date", Handler: entriesForDateHandler(svc)},
			{Method: http.MethodDelete, Path: "/entries/:date", Handler: deleteEntryHandler(svc)},
			{Method: http.MethodPost, Path: "/goal", Handler: goalHandler(svc)},
			{Method: http.MethodGet, Path: "/streak", Handler: streakHandler(svc)},
			{Method: http.MethodPost, Path: "/streak/milestone", Handler: milestoneHandler(svc)},
			{Method: http.MethodGet, Path: "/insights/sentiment-trends", Handler: trendsHandler(svc)},
			{Method: http.MethodGet, Path: "/insights/ai-summary", Handler: summaryHandler(svc)},
			{Method: http.MethodGet, Path: "/prompts", Handler: generatePromptsHandler(svc)},
			{Method: http.MethodGet, Path: "/prompts/saved", Handler: savedPromptsHandler(svc)},
			{Method: http.MethodPost, Path: "/prompts", Handler: savePromptsHandler(svc)},
			{Method: http.MethodGet, Path: "/health", Handler: healthHandler(svc)},
		},
	)
}

// RegisterSlack mounts the Slack Events API endpoint.
func RegisterSlack(server *rest.Server, path string, handler http.HandlerFunc) {
	server.AddRoute(rest.Route{Method: http.MethodPost, Path: path, Handler: handler})
}
