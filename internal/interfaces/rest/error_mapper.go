package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/checkout-relay/internal/application"
)

// ErrorResponse is the failure body. Error carries the upstream payload verbatim
// when there is one, otherwise a message.
type ErrorResponse struct {
	Error any    `json:"error"`
	Code  string `json:"code"`
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)

	response := ErrorResponse{
		Error: application.ErrorPayload(err),
		Code:  application.ToErrorCode(err),
	}

	WriteJSON(w, statusCode, response, logger)
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// WriteRaw relays an upstream JSON body untouched.
func WriteRaw(w http.ResponseWriter, statusCode int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
