package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
	"github.com/phrazzld/wordsmith-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Timestamp string   `json:"timestamp"`
	Status    int      `json:"status"`
	Error     string   `json:"error"`
	Errors    []string `json:"errors,omitempty"`
	Message   string   `json:"message"`
	Path      string   `json:"path"`
	TraceID   string   `json:"traceId,omitempty"`
}

// ErrorBody describes the client-visible part of an error response.
type ErrorBody struct {
	// Error is the short category, e.g. "Not Found".
	Error   string
	Message string
	Errors  []string
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// NewErrorResponse builds the error body for r. The trace ID is taken from
// the request context when present.
func NewErrorResponse(r *http.Request, status int, body ErrorBody) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     body.Error,
		Errors:    body.Errors,
		Message:   body.Message,
		Path:      r.URL.Path,
		TraceID:   GetTraceID(r.Context()),
	}
}

// RespondWithError writes a JSON error response with the given status code and body.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	resp := NewErrorResponse(r, status, body)

	logger.FromContext(r.Context()).Debug("sending error response",
		"status_code", status,
		"message", body.Message,
		"trace_id", resp.TraceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, resp)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the
// detailed error. Only body is ever sent to the client; err is logged after
// redaction.
//
// Log level strategy:
// - 5xx errors: ERROR
// - 401 Unauthorized: WARN
// - other statuses: DEBUG
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	body ErrorBody,
	err error,
) {
	resp := NewErrorResponse(r, status, body)

	logAttrs := []slog.Attr{
		slog.String("trace_id", resp.TraceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", body.Message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusUnauthorized:
		logLevel = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, resp)
}
