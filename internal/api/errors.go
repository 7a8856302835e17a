package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/shubh-37/journal-companion/internal/models"
)

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCollaborator):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := StatusFor(err)
	message := err.Error()
	switch status {
	case http.StatusBadGateway:
		logx.WithContext(ctx).Errorf("collaborator call failed: %v", err)
		message = "AI service is unavailable, please try again"
	case http.StatusInternalServerError:
		logx.WithContext(ctx).Errorf("request failed: %v", err)
		message = "internal error"
	}
	httpx.WriteJsonCtx(ctx, w, status, ErrorResponse{Error: message})
}

// parseError reports a malformed request as a validation failure.
func parseError(ctx context.Context, w http.ResponseWriter, err error) {
	writeError(ctx, w, models.Validationf("%v", err))
}
