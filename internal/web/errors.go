package web

// errors.go turns errors into JSON responses.
//
//  1. A handler calls respondError(w, r, err)
//  2. core.MapError picks the user message, code and status
//  3. The technical error is logged with the request id
//  4. The client gets an ErrorResponse with the user message only

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/gamestore/internal/core"
	"github.com/JonMunkholm/gamestore/internal/logging"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError maps err and writes it.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	respondMessage(w, r, core.MapError(err), err)
}

// respondMessage logs err (if any) and writes msg.
func respondMessage(w http.ResponseWriter, r *http.Request, msg core.UserMessage, err error) {
	status := msg.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error", attrs...)

	writeJSON(w, status, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

func rateLimitedMessage() core.UserMessage {
	return core.RateLimited()
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
